package skill

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/gobwas/glob"
	"golang.org/x/mod/semver"
)

// Registry manages skills
type Registry struct {
	skills map[string]*Skill
	mu     sync.RWMutex
}

// NewRegistry creates a new skill registry
func NewRegistry() *Registry {
	return &Registry{
		skills: make(map[string]*Skill),
	}
}

// Register registers a copy of the skill, replacing any skill of the same name
func (r *Registry) Register(skill Skill) error {
	if skill.Name == "" {
		return fmt.Errorf("skill name cannot be empty")
	}
	if skill.Execute == nil {
		return fmt.Errorf("skill %s has no execute operation", skill.Name)
	}
	if !isSemanticVersion(skill.Version) {
		return fmt.Errorf("skill %s has invalid semantic version %q", skill.Name, skill.Version)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.skills[skill.Name] = &skill
	return nil
}

// Get retrieves a skill by name
func (r *Registry) Get(name string) (*Skill, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	skill, exists := r.skills[name]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrSkillNotFound, name)
	}

	return skill, nil
}

// List returns all registered skills ordered by name
func (r *Registry) List() []*Skill {
	r.mu.RLock()
	defer r.mu.RUnlock()

	skills := make([]*Skill, 0, len(r.skills))
	for _, skill := range r.skills {
		skills = append(skills, skill)
	}
	sort.Slice(skills, func(i, j int) bool { return skills[i].Name < skills[j].Name })

	return skills
}

// Match returns the skills whose names match a glob pattern, ordered by
// name. An empty pattern matches everything.
func (r *Registry) Match(pattern string) ([]*Skill, error) {
	if pattern == "" {
		return r.List(), nil
	}

	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}

	var matched []*Skill
	for _, s := range r.List() {
		if g.Match(s.Name) {
			matched = append(matched, s)
		}
	}
	return matched, nil
}

// Names returns all registered skill names, sorted
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.skills))
	for name := range r.skills {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// Exists checks if a skill exists
func (r *Registry) Exists(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.skills[name]
	return exists
}

// Count returns the number of registered skills
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.skills)
}

// isSemanticVersion accepts full MAJOR.MINOR.PATCH versions with optional
// pre-release and build suffixes. Shorthands such as "1" or "1.2" are rejected.
func isSemanticVersion(version string) bool {
	v := "v" + version
	if !semver.IsValid(v) {
		return false
	}
	core, _, _ := strings.Cut(v, "+")
	return semver.Canonical(v) == core
}
