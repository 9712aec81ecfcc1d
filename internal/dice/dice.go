// Package dice provides the dice roll value and rollers for the game
// loop and the bots.
package dice

import (
	"encoding/binary"
	"fmt"

	"lukechampine.com/frand"
)

// Roll is one throw of two dice.
type Roll [2]int

// IsDoubles reports whether both dice show the same value.
func (r Roll) IsDoubles() bool { return r[0] == r[1] }

// Values expands the roll into the die values available for the
// turn: four copies for doubles, otherwise the two as rolled.
func (r Roll) Values() []int {
	if r.IsDoubles() {
		return []int{r[0], r[0], r[0], r[0]}
	}
	return []int{r[0], r[1]}
}

func (r Roll) String() string { return fmt.Sprintf("%d-%d", r[0], r[1]) }

// Roller produces dice rolls. The game loop takes one so tests can
// script exact sequences.
type Roller interface {
	Roll() Roll
}

// FrandRoller rolls with a fast cryptographic RNG.
type FrandRoller struct {
	rng *frand.RNG
}

// NewRoller returns a roller seeded from the system entropy source.
func NewRoller() *FrandRoller {
	return &FrandRoller{rng: frand.New()}
}

// NewSeededRoller returns a deterministic roller for a seed.
func NewSeededRoller(seed uint64) *FrandRoller {
	key := make([]byte, 32)
	binary.LittleEndian.PutUint64(key, seed)
	return &FrandRoller{rng: frand.NewCustom(key, 1024, 12)}
}

// Roll throws two dice.
func (r *FrandRoller) Roll() Roll {
	return Roll{r.rng.Intn(6) + 1, r.rng.Intn(6) + 1}
}

// Scripted replays a fixed sequence of rolls, cycling when it runs
// out. Test helper.
type Scripted struct {
	rolls []Roll
	next  int
}

// NewScripted returns a roller that replays rolls in order.
func NewScripted(rolls ...Roll) *Scripted {
	return &Scripted{rolls: rolls}
}

// Roll returns the next scripted roll.
func (s *Scripted) Roll() Roll {
	r := s.rolls[s.next%len(s.rolls)]
	s.next++
	return r
}
