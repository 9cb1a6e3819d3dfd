package classify

import (
	"strings"

	"github.com/fatih/camelcase"

	"github.com/boundary-cli/boundary/internal/domain"
)

// deriveKinds promotes language-level kinds to architectural kinds once
// layers are known. The mapping is deterministic: language kind + layer +
// name/annotation heuristics.
func deriveKinds(p *domain.Project) {
	var portNames []string
	for _, comp := range p.Components {
		if comp.Abstract() && comp.Layer == domain.LayerDomain {
			comp.Kind = domain.KindPort
			portNames = append(portNames, comp.Name)
		}
	}

	for _, comp := range p.Components {
		if comp.Abstract() {
			continue
		}
		switch comp.Layer {
		case domain.LayerInfrastructure:
			deriveInfrastructureKind(comp, portNames)
		case domain.LayerDomain:
			deriveDomainKind(comp)
		}
	}
}

func deriveInfrastructureKind(c *domain.Component, portNames []string) {
	switch {
	case strings.HasSuffix(c.Name, "Repository"):
		c.Kind = domain.KindRepository
	case strings.HasSuffix(c.Name, "Adapter") || implementsAnyPort(c.Name, portNames):
		c.Kind = domain.KindAdapter
	case strings.HasSuffix(c.Name, "Service") || strings.Contains(c.File, "/service/"):
		c.Kind = domain.KindService
	}
}

func implementsAnyPort(name string, portNames []string) bool {
	for _, port := range portNames {
		if MatchesPort(name, port) {
			return true
		}
	}
	return false
}

func deriveDomainKind(c *domain.Component) {
	switch c.Kind {
	case domain.KindFunction:
		return
	case domain.KindEnum:
		c.Kind = domain.KindValueObject
		return
	}
	if strings.HasSuffix(c.Name, "Event") {
		c.Kind = domain.KindEvent
		return
	}
	c.Kind = domain.KindEntity
}

// strippableSuffixes are the name tokens removed before port/adapter
// matching.
var strippableSuffixes = map[string]bool{
	"Repository": true,
	"Adapter":    true,
	"Impl":       true,
}

// StripSuffixTokens splits a type name on camel-case boundaries and drops
// trailing Repository/Adapter/Impl tokens.
func StripSuffixTokens(name string) []string {
	toks := camelcase.Split(name)
	for len(toks) > 0 && strippableSuffixes[toks[len(toks)-1]] {
		toks = toks[:len(toks)-1]
	}
	return toks
}

// MatchesPort reports whether an adapter name corresponds to a port name:
// the port's stripped tokens must be a suffix of the adapter's stripped
// tokens, case-insensitively. "PostgresUserRepository" matches
// "UserRepository"; "RedisCache" does not match "UserRepository".
func MatchesPort(adapterName, portName string) bool {
	at := StripSuffixTokens(adapterName)
	pt := StripSuffixTokens(portName)
	if len(pt) == 0 || len(pt) > len(at) {
		return false
	}
	off := len(at) - len(pt)
	for i, tok := range pt {
		if !strings.EqualFold(at[off+i], tok) {
			return false
		}
	}
	return true
}
