// Package names generates "adjective-noun" nicknames such as "lucky-tapper".
// The development backend gives them to players whose Telegram profile has
// neither a first name nor a username, so leaderboard rows stay readable.
package names

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

var adjectives = []string{
	"agile", "bold", "brave", "bright", "busy",
	"clever", "cosmic", "daring", "eager", "electric",
	"fearless", "fierce", "frosty", "gentle", "golden",
	"happy", "hungry", "jolly", "keen", "lucky",
	"mighty", "nimble", "noble", "patient", "plucky",
	"quick", "quiet", "rapid", "restless", "shiny",
	"silent", "sleepy", "speedy", "steady", "swift",
	"tireless", "turbo", "wild", "witty", "zesty",
}

var nouns = []string{
	"tapper", "clicker", "miner", "hodler", "whale",
	"coin", "token", "wallet", "nugget", "jackpot",
	"dolphin", "octopus", "otter", "panda", "falcon",
	"fox", "tiger", "walrus", "penguin", "shark",
	"comet", "rocket", "meteor", "nebula", "pulsar",
	"thumb", "finger", "drummer", "sprinter", "champion",
}

// Generate returns a random nickname in "adjective-noun" format.
func Generate() string {
	adjective := adjectives[randomIndex(len(adjectives))]
	noun := nouns[randomIndex(len(nouns))]
	return fmt.Sprintf("%s-%s", adjective, noun)
}

// randomIndex returns a uniform index in [0, max) from crypto/rand, or 0 if
// the random source fails.
func randomIndex(max int) int {
	if max <= 0 {
		return 0
	}
	n, err := rand.Int(rand.Reader, big.NewInt(int64(max)))
	if err != nil {
		return 0
	}
	return int(n.Int64())
}
