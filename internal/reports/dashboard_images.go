package reports

import (
	"encoding/base64"
	"fmt"
	"os"

	"github.com/2beens/gymreports/internal/cache"

	log "github.com/sirupsen/logrus"
)

// DashboardImages serves dashboard PNGs as base64 strings, cached by file identity
// so a replaced file is never served stale.
type DashboardImages struct {
	cache cache.Cache
}

func NewDashboardImages(c cache.Cache) *DashboardImages {
	return &DashboardImages{
		cache: c,
	}
}

// Base64 returns the encoded image at path, or "" if it is gone.
func (d *DashboardImages) Base64(path string) string {
	if path == "" {
		return ""
	}
	stat, err := os.Stat(path)
	if err != nil || stat.IsDir() {
		return ""
	}

	key := fmt.Sprintf("%s|%d|%d", path, stat.ModTime().UnixNano(), stat.Size())
	if encoded, ok := d.cache.Get(key); ok {
		return string(encoded)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		log.Errorf("read dashboard image [%s]: %s", path, err)
		return ""
	}
	encoded := base64.StdEncoding.EncodeToString(raw)
	if !d.cache.Set(key, []byte(encoded)) {
		log.Debugf("dashboard image [%s] not cached", path)
	}
	return encoded
}
