/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: property_test.go
Description: Property tests for the learner over generated labeled words.
*/

package inference_test

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/kleascm/akaylee-automata/pkg/inference"
	"github.com/kleascm/akaylee-automata/pkg/recognition"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// randomExamples labels random words over {a, b, c} with a fixed target language:
// words with an even number of a's are accepted
func randomExamples(rng *rand.Rand, count int) []inference.Example {
	examples := make([]inference.Example, 0, count)
	for i := 0; i < count; i++ {
		var word strings.Builder
		for n := rng.Intn(8); n > 0; n-- {
			word.WriteByte("abc"[rng.Intn(3)])
		}
		label := inference.LabelReject
		if strings.Count(word.String(), "a")%2 == 0 {
			label = inference.LabelAccept
		}
		examples = append(examples, inference.Example{Word: word.String(), Label: label})
	}
	return examples
}

// TestLearnedAutomatonAgreesWithExamples checks that every training word is classified
// as labeled, on many seeded example sets
func TestLearnedAutomatonAgreesWithExamples(t *testing.T) {
	for seed := int64(1); seed <= 25; seed++ {
		rng := rand.New(rand.NewSource(seed))
		examples := randomExamples(rng, 40)

		d, err := inference.Infer(examples)
		require.NoError(t, err, "seed %d", seed)

		a, err := d.Build()
		require.NoError(t, err, "seed %d", seed)

		words := make([]string, len(examples))
		for i, example := range examples {
			words[i] = example.Word
		}
		verdicts, err := recognition.Classify(a, words)
		require.NoError(t, err, "seed %d", seed)

		for i, example := range examples {
			assert.Equal(t, example.Label == inference.LabelAccept, bool(verdicts[i]),
				"seed %d word %q", seed, example.Word)
		}
	}
}

// TestLearnerGrowsMonotonically checks that learning never removes states or transitions
func TestLearnerGrowsMonotonically(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	l := inference.NewLearner()

	states, transitions := 1, 0
	for _, example := range randomExamples(rng, 60) {
		require.NoError(t, l.Learn(example))

		a := l.Automaton()
		assert.GreaterOrEqual(t, a.NumStates(), states)
		assert.GreaterOrEqual(t, a.NumTransitions(), transitions)
		// Every state except the initial one is reached by exactly one transition
		assert.Equal(t, a.NumStates()-1, a.NumTransitions())

		states, transitions = a.NumStates(), a.NumTransitions()
	}
}
