package main

import (
	"fmt"

	"github.com/toeirei/licmaster/internal/db"
	"github.com/toeirei/licmaster/internal/i18n"
)

func main() {
	dsn := "file:debprobe?mode=memory&cache=shared"
	i18n.Init("en")
	if err := db.InitDB("sqlite", dsn); err != nil {
		panic(err)
	}

	// Seed a few audit entries and recents the way the app would write them.
	if err := db.LogAction("KEYPAIR_GENERATED", "product: Rhino 3D, bits: 2048"); err != nil {
		panic(err)
	}
	if err := db.LogAction("PROJECT_SAVE", "file: /tmp/rhino3d.rlic"); err != nil {
		panic(err)
	}
	if err := db.LogAction("KEY_EXPORTED", "file: /tmp/Rhino_3D_public.xml"); err != nil {
		panic(err)
	}
	if err := db.TouchRecentProject("/tmp/rhino3d.rlic", "Rhino 3D"); err != nil {
		panic(err)
	}
	if err := db.TouchRecentProject("/tmp/grasshopper.rlic", "Grasshopper"); err != nil {
		panic(err)
	}
	// Touching an existing path again must update in place, not duplicate.
	if err := db.TouchRecentProject("/tmp/rhino3d.rlic", "Rhino 3D"); err != nil {
		panic(err)
	}

	entries, err := db.GetAllAuditLogEntries()
	if err != nil {
		panic(err)
	}
	fmt.Printf("audit entries: %d\n", len(entries))
	for _, e := range entries {
		fmt.Printf("entry: %+v\n", e)
	}

	recents, err := db.GetRecentProjects(0)
	if err != nil {
		panic(err)
	}
	fmt.Printf("recent projects: %d\n", len(recents))
	for _, r := range recents {
		fmt.Printf("recent: %+v\n", r)
	}
}
