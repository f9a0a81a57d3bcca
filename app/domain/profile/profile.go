package profile

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	ErrIncompleteProfile = errors.New("profile is incomplete")
	ErrInvalidProfile    = errors.New("profile is invalid")
)

type Field string

const (
	FieldNiche    Field = "niche"
	FieldAudience Field = "audience"
)

// UserProfile is what the creator told us during onboarding.
type UserProfile struct {
	Niche     string            `json:"niche" validate:"required,max=120"`
	Audience  string            `json:"audience" validate:"required,max=200"`
	Goals     []string          `json:"goals" validate:"max=20,dive,required,max=200"`
	Platforms []string          `json:"platforms" validate:"max=20,dive,required,max=64"`
	Answers   map[string]string `json:"answers" validate:"max=50,dive,keys,required,max=300,endkeys,max=2000"`
	Version   int64             `json:"version"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// IncompleteProfileError lists the profile fields a feature needs but the profile lacks.
type IncompleteProfileError struct {
	Missing []Field
}

func (e *IncompleteProfileError) Error() string {
	names := make([]string, len(e.Missing))
	for i, f := range e.Missing {
		names[i] = string(f)
	}
	return fmt.Sprintf("%v: missing %s", ErrIncompleteProfile, strings.Join(names, ", "))
}

func (e *IncompleteProfileError) Unwrap() error {
	return ErrIncompleteProfile
}

// Require reports every field in fields that is blank on p.
func (p UserProfile) Require(fields ...Field) error {
	var missing []Field
	for _, f := range fields {
		if strings.TrimSpace(p.value(f)) == "" {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return &IncompleteProfileError{Missing: missing}
	}
	return nil
}

func (p UserProfile) value(f Field) string {
	switch f {
	case FieldNiche:
		return p.Niche
	case FieldAudience:
		return p.Audience
	default:
		return ""
	}
}

func (p UserProfile) Clone() UserProfile {
	p.Goals = slices.Clone(p.Goals)
	p.Platforms = slices.Clone(p.Platforms)
	p.Answers = maps.Clone(p.Answers)
	return p
}

func (p UserProfile) normalized() UserProfile {
	p = p.Clone()
	p.Niche = strings.TrimSpace(p.Niche)
	p.Audience = strings.TrimSpace(p.Audience)
	p.Goals = trimAll(p.Goals)
	p.Platforms = trimAll(p.Platforms)
	if p.Answers != nil {
		answers := make(map[string]string, len(p.Answers))
		for k, v := range p.Answers {
			answers[strings.TrimSpace(k)] = strings.TrimSpace(v)
		}
		p.Answers = answers
	}
	return p
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Store holds the single active profile. The zero profile has version 0 and no fields.
type Store struct {
	mu      sync.RWMutex
	profile UserProfile
	now     func() time.Time
}

func NewStore() *Store {
	return &Store{now: time.Now}
}

func (s *Store) Get() UserProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile.Clone()
}

// Update replaces the profile with next and bumps the version. Version and UpdatedAt on next
// are ignored.
func (s *Store) Update(next UserProfile) (UserProfile, error) {
	next = next.normalized()
	if err := validate.Struct(next); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			fields := make([]string, 0, len(validationErrors))
			for _, fe := range validationErrors {
				fields = append(fields, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
			}
			return UserProfile{}, fmt.Errorf("%w: %s", ErrInvalidProfile, strings.Join(fields, "; "))
		}
		return UserProfile{}, fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	next.Version = s.profile.Version + 1
	next.UpdatedAt = s.now().UTC()
	s.profile = next
	return s.profile.Clone(), nil
}
