package cache

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"

	"carousel-backend/internal/domains/carousel/model"
)

// Key namespace. Everything this service writes into a cache tier lives
// under keyPrefix so a full flush can clear it with one pattern delete.
const (
	keyPrefix  = "carousel:"
	keyVersion = "1.0.0"

	// FlushPattern matches every key owned by this service.
	FlushPattern = keyPrefix + "*"
)

func md5hex(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

// recordKey builds the hot-tier key for a carousel record. When settings
// are nil only the slug is folded in; that base key is the one used for
// lookups. Settings-bearing variants exist for invalidation fan-out.
func recordKey(slug string, settings *model.DisplaySettings) string {
	parts := []string{"carousel", slug}

	if settings != nil {
		parts = append(parts,
			"effect_"+settings.Effect,
			fmt.Sprintf("slides_%d", settings.SlidesPerView),
			fmt.Sprintf("autoplay_%d", boolToInt(settings.Autoplay)),
		)
	}

	return keyPrefix + "rec:" + md5hex(strings.Join(parts, "_")) + ":" + keyVersion
}

// recordKeyFanOut returns the base key plus every settings variant for a
// slug. Invalidation clears all of them because the settings stored with
// the record may have changed since the entry was written.
func recordKeyFanOut(slug string) []string {
	keys := []string{recordKey(slug, nil)}

	effects := []string{model.EffectSlide, model.EffectFade, model.EffectCoverflow}
	for _, effect := range effects {
		for perView := 1; perView <= 4; perView++ {
			for _, autoplay := range []bool{false, true} {
				keys = append(keys, recordKey(slug, &model.DisplaySettings{
					Effect:        effect,
					SlidesPerView: perView,
					Autoplay:      autoplay,
				}))
			}
		}
	}

	return keys
}

func warmKey(slug string) string {
	return keyPrefix + "warm:" + md5hex(slug)
}

func fragmentKey(slug, deviceClass string) string {
	return keyPrefix + "frag:" + md5hex(slug) + ":" + deviceClass
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
