// Package fieldproc rewrites outgoing payloads before they are created or
// updated, keyed by the target collection.
package fieldproc

import (
	"fmt"
	"maps"
	"sync"

	"github.com/hashicorp/go-hclog"
	"github.com/iancoleman/strcase"

	"github.com/directus/directus-sdk-go/pkg/file"
)

// Rule transforms a payload bound for a collection. It receives a private
// copy of the payload and may modify and return it.
type Rule func(data map[string]any) (map[string]any, error)

// Processor dispatches payloads to the rule registered for their collection.
type Processor struct {
	mu    sync.RWMutex
	rules map[string]Rule

	files        *file.Builder
	passwordCost int
	logger       hclog.Logger
}

// Option configures a Processor.
type Option func(*Processor)

// WithPasswordCost sets the bcrypt cost used for password fields.
func WithPasswordCost(cost int) Option {
	return func(p *Processor) {
		if cost > 0 {
			p.passwordCost = cost
		}
	}
}

// WithFileBuilder sets the builder used to inline file references.
func WithFileBuilder(b *file.Builder) Option {
	return func(p *Processor) {
		if b != nil {
			p.files = b
		}
	}
}

// WithLogger sets the processor logger.
func WithLogger(l hclog.Logger) Option {
	return func(p *Processor) {
		if l != nil {
			p.logger = l
		}
	}
}

// New returns a Processor with the built-in rules for the users and files
// collections registered.
func New(opts ...Option) *Processor {
	p := &Processor{
		rules:        map[string]Rule{},
		files:        file.NewBuilder(nil),
		passwordCost: DefaultPasswordCost,
		logger:       hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(p)
	}

	p.Register(UsersCollection, p.processUsers)
	p.Register(FilesCollection, processFiles)

	return p
}

// HookName canonicalizes a collection name into the registry key, so
// "directus_users", "DirectusUsers" and "directusUsers" share one rule.
func HookName(collection string) string {
	return strcase.ToCamel(collection)
}

// Register binds rule to collection, replacing any earlier rule.
func (p *Processor) Register(collection string, rule Rule) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.rules[HookName(collection)] = rule
}

// Lookup returns the rule registered for collection.
func (p *Processor) Lookup(collection string) (Rule, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	rule, ok := p.rules[HookName(collection)]
	return rule, ok
}

// Files returns the builder used for file references.
func (p *Processor) Files() *file.Builder {
	return p.files
}

// Process returns a transformed copy of data. The input map is never
// modified. Collections without a rule pass through unchanged, apart from
// *file.File values, which are replaced by their upload attributes.
func (p *Processor) Process(collection string, data map[string]any) (map[string]any, error) {
	out := maps.Clone(data)
	if out == nil {
		out = map[string]any{}
	}

	if rule, ok := p.Lookup(collection); ok {
		p.logger.Trace("applying field rule", "collection", collection, "hook", HookName(collection))

		var err error
		out, err = rule(out)
		if err != nil {
			return nil, fmt.Errorf("error processing %s data: %w", collection, err)
		}
	}

	for key, value := range out {
		f, ok := value.(*file.File)
		if !ok {
			continue
		}
		payload, err := f.Payload(p.files)
		if err != nil {
			return nil, fmt.Errorf("error processing %s.%s: %w", collection, key, err)
		}
		out[key] = payload
	}

	return out, nil
}
