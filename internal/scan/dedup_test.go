package scan

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"arduscan/internal/model"
)

func rec(kind model.Kind, header, dir string) model.HeaderRecord {
	return model.HeaderRecord{Kind: kind, HeaderPath: header, IncludeDir: dir}
}

func TestDedupSortsAndKeepsFirst(t *testing.T) {
	in := []model.HeaderRecord{
		rec(model.KindCMSIS, "/b/core_cm4.h", "/b"),
		rec(model.KindCMSIS, "/a/cmsis_device.h", "/a"),
		rec(model.KindCMSIS, "/b/core_cm0.h", "/b"),
		rec(model.KindCMSIS, "/a/core_cm7.h", "/a"),
	}
	out := Dedup(in)
	assert.Equal(t, []model.HeaderRecord{
		rec(model.KindCMSIS, "/a/cmsis_device.h", "/a"),
		rec(model.KindCMSIS, "/b/core_cm4.h", "/b"),
	}, out)
}

func TestDedupIdempotent(t *testing.T) {
	in := []model.HeaderRecord{
		rec(model.KindBSP, "/z/bsp_api.h", "/z"),
		rec(model.KindBSP, "/m/bsp_api.h", "/m"),
		rec(model.KindBSP, "/m/bsp_api.h", "/m"),
		rec(model.KindBSP, "/a/x/bsp_api.h", "/a/x"),
	}
	once := Dedup(in)
	assert.Equal(t, once, Dedup(once))
}

func TestDedupUniqueness(t *testing.T) {
	var in []model.HeaderRecord
	for _, d := range []string{"/p", "/q", "/p", "/r", "/q", "/p"} {
		in = append(in, rec(model.KindHALData, d+"/hal_data.h", d))
	}
	out := Dedup(in)
	seen := map[string]bool{}
	for _, r := range out {
		assert.False(t, seen[r.IncludeDir], "duplicate include dir %s", r.IncludeDir)
		seen[r.IncludeDir] = true
	}
	assert.Len(t, out, 3)
}

func TestDedupPermutationInvariant(t *testing.T) {
	base := []model.HeaderRecord{
		rec(model.KindPins, "/v/UNOWIFIR4/pins_arduino.h", "/v/UNOWIFIR4"),
		rec(model.KindPins, "/v/MINIMA/pins_arduino.h", "/v/MINIMA"),
		rec(model.KindPins, "/v/NANOR4/pins_arduino.h", "/v/NANOR4"),
		rec(model.KindPins, "/v/MINIMA/pins_arduino.h", "/v/MINIMA"),
	}
	want := Dedup(base)

	rng := rand.New(rand.NewSource(42))
	for range 20 {
		perm := make([]model.HeaderRecord, len(base))
		copy(perm, base)
		rng.Shuffle(len(perm), func(i, j int) { perm[i], perm[j] = perm[j], perm[i] })
		assert.Equal(t, want, Dedup(perm))
	}
}

func TestDedupEmpty(t *testing.T) {
	assert.Empty(t, Dedup[model.HeaderRecord](nil))
}
