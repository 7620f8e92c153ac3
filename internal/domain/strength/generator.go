package strength

const (
	lowerChars   = "abcdefghijklmnopqrstuvwxyz"
	upperChars   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digitChars   = "0123456789"
	specialChars = "!@#$%^&*()_+-=[]{}|;:,.<>?"
	allChars     = lowerChars + upperChars + digitChars + specialChars

	// GeneratedLength is the fixed length of generated passwords.
	GeneratedLength = 16
)

// Generator produces random passwords that always cover all four classes.
type Generator struct {
	Source Source
}

// NewGenerator returns a Generator backed by crypto/rand.
func NewGenerator() *Generator {
	return &Generator{Source: CryptoSource{}}
}

// Generate builds a 16 character password: one character from each class,
// twelve from the union, then a Fisher-Yates shuffle.
func (g *Generator) Generate() string {
	b := make([]byte, 0, GeneratedLength)
	for _, set := range []string{lowerChars, upperChars, digitChars, specialChars} {
		b = append(b, g.pick(set))
	}
	for len(b) < GeneratedLength {
		b = append(b, g.pick(allChars))
	}
	g.shuffle(b)
	return string(b)
}

func (g *Generator) pick(set string) byte {
	return set[g.Source.Intn(len(set))]
}

func (g *Generator) shuffle(b []byte) {
	for i := len(b) - 1; i > 0; i-- {
		j := g.Source.Intn(i + 1)
		b[i], b[j] = b[j], b[i]
	}
}
