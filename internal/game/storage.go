package game

import (
	"log"

	"github.com/quasilyte/gdata/v2"
)

const appName = "shmup_enemy4"

// OpenStorage opens the per-user save data area. It returns nil when the
// platform has no usable storage; callers then keep data in memory only.
func OpenStorage() *gdata.Manager {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("Warning: save data unavailable, high scores will not persist: %v", err)
		return nil
	}
	return m
}
