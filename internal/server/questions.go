package server

import (
	"fmt"
	"math/rand/v2"
	"sort"

	"github.com/google/uuid"
)

// questionCatalog maps each category to its prompt adjectives. Read-only
// after init; the sampler is its only consumer.
var questionCatalog = map[string][]string{
	"soft": {
		"kind",
		"funny",
		"creative",
		"intelligent",
		"brave",
		"generous",
		"cheerful",
		"positive",
		"athletic",
		"artistic",
		"friendly",
		"wise",
		"organized",
		"patient",
		"adventurous",
		"dreamy",
		"sociable",
		"calm",
		"enthusiastic",
		"helpful",
	},
	"classic": {
		"talkative",
		"shy",
		"stubborn",
		"greedy",
		"lazy",
		"stressed",
		"distracted",
		"clumsy",
		"romantic",
		"jealous",
		"likely to party all night",
		"likely to blow their paycheck",
		"likely to complain about everything",
		"sensitive",
		"messy",
		"touchy",
		"addicted to social media",
		"chronically late",
		"likely to lie their way out of trouble",
		"selfish",
	},
	"dark-humor": {
		"likely to end up in prison",
		"likely to survive a zombie apocalypse",
		"likely to die first in a horror movie",
		"likely to become a dictator",
		"likely to sell out their friends for money",
		"likely to join a cult",
		"likely to make a deal with the devil",
		"likely to vanish without a trace",
		"likely to be possessed",
		"likely to get dumped by text",
		"likely to end up alone with fifty cats",
		"likely to ruin their life on a whim",
		"likely to get fired on day one",
		"likely to trigger the end of the world",
		"likely to fake their own death",
	},
	"spicy": {
		"flirtatious",
		"unfaithful",
		"likely to have a secret admirer",
		"likely to kiss on the first date",
		"likely to have the most exes",
		"likely to send a risky text",
		"obsessed with their looks",
		"likely to date two people at once",
		"likely to fall in love at first sight",
		"likely to ghost someone",
		"likely to flirt with the waiter",
		"likely to have a dating app addiction",
		"likely to marry a stranger in Vegas",
		"likely to write love poems",
		"likely to get caught sneaking out",
	},
	"politically-incorrect": {
		"likely to make an awkward joke",
		"likely to get cancelled online",
		"likely to insult someone without noticing",
		"likely to start an argument at dinner",
		"likely to cause a public scandal",
		"likely to offend everyone in the room",
		"likely to believe a conspiracy theory",
		"likely to say something shocking",
		"disrespectful",
		"likely to laugh at a funeral",
		"likely to argue with a referee",
		"likely to heckle a comedian",
		"provocative",
		"likely to start a food fight",
		"likely to get kicked out of a wedding",
	},
}

func catalogCategoryIDs() []string {
	ids := make([]string, 0, len(questionCatalog))
	for id := range questionCatalog {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func isKnownCategory(id string) bool {
	if id == categoryCustom {
		return true
	}
	_, ok := questionCatalog[id]
	return ok
}

// sampleQuestions gathers the adjectives of the selected categories,
// drops anything in the used set, shuffles and takes the first count. When
// the used set is what makes the remainder too short it returns
// resetNeeded=true instead of a short list; the caller clears the history
// and samples again. A catalog genuinely smaller than count yields as many
// entries as exist.
func sampleQuestions(categories []string, count int, used map[string]struct{}) ([]questionSource, bool) {
	pool := make([]questionSource, 0)
	for _, category := range categories {
		for _, adjective := range questionCatalog[category] {
			pool = append(pool, questionSource{Adjective: adjective, Category: category})
		}
	}

	available := make([]questionSource, 0, len(pool))
	for _, source := range pool {
		if _, asked := used[source.Adjective]; asked {
			continue
		}
		available = append(available, source)
	}

	if len(available) < count && len(available) < len(pool) {
		return nil, true
	}

	rand.Shuffle(len(available), func(i, j int) {
		available[i], available[j] = available[j], available[i]
	})
	if len(available) > count {
		available = available[:count]
	}
	return available, false
}

func makeQuestion(source questionSource) Question {
	return Question{
		ID:        uuid.NewString(),
		Text:      fmt.Sprintf("Who in the room is the most %s?", source.Adjective),
		Adjective: source.Adjective,
		Category:  source.Category,
	}
}
