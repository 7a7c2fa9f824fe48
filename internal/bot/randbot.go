package bot

import (
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
)

// RandomBot picks and plays uniformly at random
type RandomBot struct {
	rng    *rand.Rand
	logger *log.Logger
}

// NewRandomBot creates a new RandomBot instance
func NewRandomBot(rng *rand.Rand, logger *log.Logger) *RandomBot {
	return &RandomBot{rng: rng, logger: logger}
}

func (r *RandomBot) Name() string { return Random }

func (r *RandomBot) Decide(s Situation) Decision {
	var d Decision
	hand := s.Hand
	if len(s.Choices) > 0 {
		pick := s.Choices[r.rng.IntN(len(s.Choices))]
		d.Pick = pick.ID
		hand = append(append(hand[:0:0], hand...), pick)
	}
	if len(hand) == 0 {
		d.Reasoning = "random-bot nothing to play"
		return d
	}
	play := hand[r.rng.IntN(len(hand))]
	d.Play = play.ID
	d.Target = play.DefaultTarget
	d.Reasoning = "random-bot random card"
	r.logger.Debug("Random decision", "pick", d.Pick, "play", d.Play)
	return d
}
