package dialogue

import (
	"math/rand"
	"sync"

	"reqdojo/internal/persona"
)

var beginnerFallbacks = []string{
	"Sure, let me walk you through it. The main problem is that the feedback loop is too slow; users often wait a long time before anyone gets back to them.",
	"Concretely, our current system has no automatic triage, so every ticket is handled by hand.",
	"One more thing: we have to stay compliant with the data privacy rules, that part is non-negotiable.",
	"The most common complaint is response time. The average wait is over 24 hours right now.",
	"The system needs to take input from several channels: web, mobile, and email.",
}

var realisticFallbacks = []string{
	"Ugh, don't get me started! This system drives everyone crazy... users complain daily and I've run out of ways to explain it to them.",
	"Hmm... honestly I have no idea how you'd build it, I just feel it should be faster? Oh, and I have another meeting this afternoon...",
	"Oh right, the boss mentioned some rule about data not leaving the building. You should look into that one.",
	"You know what, another customer complained yesterday, said their request just vanished into a black hole... so annoying.",
	"Everything is manual right now, it's painfully slow. Could you automate it somehow? Don't ask me how specifically...",
}

// fallbackReplies serves one canned stakeholder reply when the completion
// service is unreachable, keyed by persona tier.
type fallbackReplies struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func newFallbackReplies() *fallbackReplies {
	return &fallbackReplies{rng: rand.New(rand.NewSource(rand.Int63()))}
}

func (f *fallbackReplies) pick(tier string) string {
	set := realisticFallbacks
	if tier == persona.TierBeginner {
		set = beginnerFallbacks
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return set[f.rng.Intn(len(set))]
}
