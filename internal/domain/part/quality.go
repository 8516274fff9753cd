package part

import (
	"fmt"
	"strings"
)

// Quality grades a part from A (worst) to F (best)
type Quality int

const (
	QualityA Quality = iota
	QualityB
	QualityC
	QualityD
	QualityE
	QualityF
)

// DefaultQuality is what freshly created parts get
const DefaultQuality = QualityD

var qualityLetters = []string{"A", "B", "C", "D", "E", "F"}

func (q Quality) IsValid() bool {
	return q >= QualityA && q <= QualityF
}

// Name returns the letter grade. Reversed naming flips the scale so A is best.
func (q Quality) Name(reversed bool) string {
	if !q.IsValid() {
		return "?"
	}
	if reversed {
		return qualityLetters[QualityF-q]
	}
	return qualityLetters[q]
}

func (q Quality) String() string {
	return q.Name(false)
}

// ParseQuality reads a letter grade, honouring reversed naming
func ParseQuality(s string, reversed bool) (Quality, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for i, letter := range qualityLetters {
		if letter == s {
			if reversed {
				return QualityF - Quality(i), nil
			}
			return Quality(i), nil
		}
	}
	return 0, fmt.Errorf("invalid quality %q: expected A-F", s)
}
