// Package stone derives collectible stones from integer seeds.
//
// Every attribute of a stone except its creation time and optional name is a
// pure function of its seed. The order in which attributes are drawn from the
// generator is part of the save-file contract: changing it changes every
// existing stone.
package stone

import (
	"fmt"
	"time"

	"github.com/coder/quartz"
	"github.com/lox/stonefight/internal/randutil"
)

// Seed identifies a stone and drives all of its derived attributes.
type Seed int32

// Color is a stone's colour from the fixed palette.
type Color string

const (
	Crimson  Color = "crimson"
	Amber    Color = "amber"
	Jade     Color = "jade"
	Azure    Color = "azure"
	Violet   Color = "violet"
	Obsidian Color = "obsidian"
	Ivory    Color = "ivory"
	Slate    Color = "slate"
)

// Palette lists colours in draw order.
var Palette = []Color{Crimson, Amber, Jade, Azure, Violet, Obsidian, Ivory, Slate}

// Shape is a stone's silhouette.
type Shape string

const (
	Round     Shape = "round"
	Oval      Shape = "oval"
	Jagged    Shape = "jagged"
	Flat      Shape = "flat"
	Crystal   Shape = "crystal"
	Pyramidal Shape = "pyramidal"
)

// Shapes lists shapes in draw order.
var Shapes = []Shape{Round, Oval, Jagged, Flat, Crystal, Pyramidal}

// Attribute ranges. All integer attributes are inclusive.
const (
	MinWeight = 1
	MaxWeight = 100
	MaxRarity = 100
	MaxHard   = 100
	MaxMagic  = 100
)

// Qualities is the immutable description of one stone.
type Qualities struct {
	Seed      Seed      `json:"seed"`
	Color     Color     `json:"color"`
	Shape     Shape     `json:"shape"`
	Weight    int       `json:"weight"`
	Rarity    int       `json:"rarity"`
	Hardness  int       `json:"hardness"`
	Magic     int       `json:"magic"`
	CreatedAt time.Time `json:"createdAt"`
	Name      string    `json:"name,omitempty"`
}

// Derive builds the stone for seed. CreatedAt is left zero; use Mint or
// Stamp when a creation time is wanted.
func Derive(seed Seed) Qualities {
	prng := randutil.NewMulberry32(int32(seed))
	q := Qualities{Seed: seed}
	q.Color = Palette[pick(prng, len(Palette))]
	q.Shape = Shapes[pick(prng, len(Shapes))]
	q.Weight = MinWeight + pick(prng, MaxWeight-MinWeight+1)
	q.Rarity = pick(prng, MaxRarity+1)
	q.Hardness = pick(prng, MaxHard+1)
	q.Magic = pick(prng, MaxMagic+1)
	return q
}

func pick(src randutil.Source, n int) int {
	i := int(src.Float64() * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}

// Stamp returns a copy of q with CreatedAt set from clock.
func Stamp(q Qualities, clock quartz.Clock) Qualities {
	q.CreatedAt = clock.Now()
	return q
}

// Mint draws a fresh seed from src and derives a new stone from it.
func Mint(src randutil.Source, clock quartz.Clock) Qualities {
	return Stamp(Derive(Seed(randutil.NewSeed(src))), clock)
}

// Power is the combat power scalar of a stone.
func Power(q Qualities) float64 {
	return float64(q.Rarity)*0.4 + float64(q.Magic)*0.3 + float64(q.Weight)*0.5
}

// SameStone reports whether a and b have identical derived attributes,
// ignoring CreatedAt and Name.
func SameStone(a, b Qualities) bool {
	a.CreatedAt, b.CreatedAt = time.Time{}, time.Time{}
	a.Name, b.Name = "", ""
	return a == b
}

// Tier buckets a stone's rarity.
type Tier int

const (
	Common Tier = iota
	Uncommon
	Rare
	Epic
	Legendary
)

// String returns the string representation of a tier
func (t Tier) String() string {
	switch t {
	case Common:
		return "Common"
	case Uncommon:
		return "Uncommon"
	case Rare:
		return "Rare"
	case Epic:
		return "Epic"
	case Legendary:
		return "Legendary"
	default:
		return "Unknown"
	}
}

// Tier returns the rarity tier of the stone.
func (q Qualities) Tier() Tier {
	switch {
	case q.Rarity >= 95:
		return Legendary
	case q.Rarity >= 80:
		return Epic
	case q.Rarity >= 60:
		return Rare
	case q.Rarity >= 35:
		return Uncommon
	default:
		return Common
	}
}

// DisplayName returns the stone's name, or a name built from its looks.
func (q Qualities) DisplayName() string {
	if q.Name != "" {
		return q.Name
	}
	return fmt.Sprintf("%s %s", title(string(q.Color)), title(string(q.Shape)))
}

// String returns a one-line summary of the stone
func (q Qualities) String() string {
	return fmt.Sprintf("%s #%d [%s] w%d r%d h%d m%d power %.1f",
		q.DisplayName(), q.Seed, q.Tier(), q.Weight, q.Rarity, q.Hardness, q.Magic, Power(q))
}

func title(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}
