package riddle

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/vahtras/matchstick/internal/engine"
	"github.com/vahtras/matchstick/internal/glyph"
)

// DomainRiddles prefixes the digest of a riddle map. The version suffix
// allows the encoding to change later.
const DomainRiddles = "matchstick/riddles/v1"

// Run is one Build together with its identity.
type Run struct {
	ID     string `json:"id"`
	Name   string `json:"name,omitempty"`
	Params Params `json:"params"`
	Digest string `json:"digest"`
	Map    *Map   `json:"riddles"`
}

// RunIDGenerator creates run IDs.
type RunIDGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 run IDs.
// Stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// Generate returns a hyphenated UUIDv7. Panics if generation fails.
func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// FixedGenerator returns predetermined IDs, for tests.
type FixedGenerator struct {
	mu  sync.Mutex
	ids []string
	idx int
}

// NewFixedGenerator creates a generator that returns ids in order.
func NewFixedGenerator(ids ...string) *FixedGenerator {
	return &FixedGenerator{ids: ids}
}

// Generate returns the next ID. Panics once all IDs are used.
func (g *FixedGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.idx >= len(g.ids) {
		panic("FixedGenerator: all ids exhausted")
	}
	id := g.ids[g.idx]
	g.idx++
	return id
}

// NewRun builds the map for p and stamps it with an ID and digest.
func NewRun(ctx context.Context, gen RunIDGenerator, eng *engine.Engine, reg *glyph.Registry, name string, p Params) (*Run, error) {
	if p.Kind == "" {
		p.Kind = engine.KindMove
	}
	m, err := Build(ctx, eng, reg, p)
	if err != nil {
		return nil, err
	}
	digest, err := Digest(p, m)
	if err != nil {
		return nil, err
	}
	return &Run{ID: gen.Generate(), Name: name, Params: p, Digest: digest, Map: m}, nil
}

// Digest computes the content address of a map built with p:
// SHA256(DomainRiddles + 0x00 + JSON(params, entries)).
// Equal maps built with equal parameters share a digest.
func Digest(p Params, m *Map) (string, error) {
	data, err := json.Marshal(struct {
		Params  Params  `json:"params"`
		Entries []Entry `json:"entries"`
	}{p, m.Entries()})
	if err != nil {
		return "", fmt.Errorf("digest: %w", err)
	}
	return hashWithDomain(DomainRiddles, data), nil
}

func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}
