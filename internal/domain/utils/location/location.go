package location

import (
	"sync"
	"time"

	"github.com/spf13/viper"
)

var (
	loc  *time.Location
	once sync.Once
)

// Location returns the portal's configured time zone, falling back to UTC.
func Location() *time.Location {
	once.Do(func() {
		var err error
		loc, err = time.LoadLocation(viper.GetString("settings.timezone"))
		if err != nil {
			loc = time.UTC
		}
	})
	return loc
}
