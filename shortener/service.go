package shortener

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"shortlink/models"
)

// Store is the persistence surface the engine needs. Lookups return a nil
// record when nothing matches; the engine owns the error semantics on top.
type Store interface {
	FindByCode(code string) (*models.URL, error)
	// FindByURL returns an unlimited-use mapping for the original URL; the
	// dedup path never reuses limited records, so stores skip them.
	FindByURL(original string) (*models.URL, error)
	// Insert persists the record and must fail with a unique-violation error
	// (detectable via IsConflict) when the short code is already taken.
	Insert(u *models.URL) error
	DeleteByID(id int) error
	// DecrementUses atomically decrements remaining_uses when it is still
	// positive. ok is false when no eligible row was found.
	DecrementUses(id int) (remaining int, ok bool, err error)
	// IsConflict reports whether err is the store's uniqueness violation.
	IsConflict(err error) bool
}

// Policy carries the deployment-configurable knobs of the engine.
type Policy struct {
	CodeLength          int
	MaxGenerateAttempts int
	// DedupByURL reuses an existing code when the same URL is shortened again
	// without an alias, use count or expiry.
	DedupByURL bool
	// CoerceNonPositiveUses turns a zero or negative use count into unlimited
	// instead of rejecting it.
	CoerceNonPositiveUses bool
}

// Service orchestrates the mapping lifecycle: creation with code generation
// or alias handling, and consumption with expiry and use-count checks.
type Service struct {
	store  Store
	policy Policy
	now    func() time.Time
}

func NewService(store Store, policy Policy) *Service {
	if policy.CodeLength < 6 || policy.CodeLength > 10 {
		policy.CodeLength = 8
	}
	if policy.MaxGenerateAttempts <= 0 {
		policy.MaxGenerateAttempts = 32
	}
	return &Service{
		store:  store,
		policy: policy,
		now:    time.Now,
	}
}

// CreateRequest is the raw creation input; all fields but URL are optional
// and arrive as the form strings the client sent.
type CreateRequest struct {
	URL   string
	Uses  string
	Date  string
	Time  string
	Alias string
}

// Create validates the request, obtains a short code and persists the record.
func (s *Service) Create(req CreateRequest) (*models.URL, error) {
	original, err := validateURL(req.URL)
	if err != nil {
		return nil, err
	}

	uses, err := s.parseUses(req.Uses)
	if err != nil {
		return nil, err
	}

	now := s.now()
	expDate, expTime, err := resolveExpiry(req.Date, req.Time, now)
	if err != nil {
		return nil, err
	}

	alias := NormalizeAlias(req.Alias)

	// The no-alias, no-limit variant reuses an existing mapping for the same
	// URL instead of minting a second code.
	if s.policy.DedupByURL && alias == "" && strings.TrimSpace(req.Uses) == "" &&
		strings.TrimSpace(req.Date) == "" && strings.TrimSpace(req.Time) == "" {
		existing, err := s.store.FindByURL(original)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.Unlimited() && liveAt(existing.ExpiresDate, existing.ExpiresTime, now) {
			return existing, nil
		}
	}

	if alias != "" {
		taken, err := s.store.FindByCode(alias)
		if err != nil {
			return nil, err
		}
		if taken != nil {
			return nil, ErrAliasConflict
		}
		rec := &models.URL{
			Original:      original,
			ShortCode:     alias,
			RemainingUses: uses,
			ExpiresDate:   expDate,
			ExpiresTime:   expTime,
			CreatedAt:     now,
		}
		if err := s.store.Insert(rec); err != nil {
			// The unique index closes the check-then-insert race; the loser
			// gets the conflict, the requested alias is never mutated.
			if s.store.IsConflict(err) {
				return nil, ErrAliasConflict
			}
			return nil, err
		}
		return rec, nil
	}

	// Generated path. An insert conflict here means another request raced us
	// to the same freshly minted code, so sample again.
	for attempt := 0; attempt < s.policy.MaxGenerateAttempts; attempt++ {
		code, err := Generate(s.policy.CodeLength, s.policy.MaxGenerateAttempts, func(c string) (bool, error) {
			rec, err := s.store.FindByCode(c)
			return rec != nil, err
		})
		if err != nil {
			return nil, err
		}
		rec := &models.URL{
			Original:      original,
			ShortCode:     code,
			RemainingUses: uses,
			ExpiresDate:   expDate,
			ExpiresTime:   expTime,
			CreatedAt:     now,
		}
		err = s.store.Insert(rec)
		if err == nil {
			return rec, nil
		}
		if !s.store.IsConflict(err) {
			return nil, err
		}
	}
	return nil, ErrGenerationExhausted
}

// Resolve consumes one use of the mapping and returns the redirect target.
// Expired and exhausted records are deleted as a side effect.
func (s *Service) Resolve(code string) (string, error) {
	rec, err := s.store.FindByCode(code)
	if err != nil {
		return "", err
	}
	if rec == nil {
		return "", ErrNotFound
	}

	if !liveAt(rec.ExpiresDate, rec.ExpiresTime, s.now()) {
		if err := s.store.DeleteByID(rec.ID); err != nil {
			return "", err
		}
		return "", ErrExpired
	}

	if rec.Unlimited() {
		return rec.Original, nil
	}
	if rec.RemainingUses == 0 {
		// Already exhausted but not yet removed.
		if err := s.store.DeleteByID(rec.ID); err != nil {
			return "", err
		}
		return "", ErrExpired
	}

	remaining, ok, err := s.store.DecrementUses(rec.ID)
	if err != nil {
		return "", err
	}
	if !ok {
		// A concurrent resolve took the last use between lookup and decrement.
		if err := s.store.DeleteByID(rec.ID); err != nil {
			return "", err
		}
		return "", ErrExpired
	}
	if remaining == 0 {
		// Last successful use: remove the record but still redirect.
		if err := s.store.DeleteByID(rec.ID); err != nil {
			return "", err
		}
	}
	return rec.Original, nil
}

// UsageSummary describes a mapping's state without consuming a use.
type UsageSummary struct {
	ShortCode     string
	Original      string
	Unlimited     bool
	RemainingUses int
	Expired       bool
}

// Inspect reports remaining uses and expiry status for a code. It never
// deletes or decrements.
func (s *Service) Inspect(code string) (*UsageSummary, error) {
	rec, err := s.store.FindByCode(code)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrNotFound
	}
	return &UsageSummary{
		ShortCode:     rec.ShortCode,
		Original:      rec.Original,
		Unlimited:     rec.Unlimited(),
		RemainingUses: rec.RemainingUses,
		Expired:       !liveAt(rec.ExpiresDate, rec.ExpiresTime, s.now()) || rec.RemainingUses == 0,
	}, nil
}

func (s *Service) parseUses(in string) (int, error) {
	in = strings.TrimSpace(in)
	if in == "" {
		return models.UnlimitedUses, nil
	}
	n, err := strconv.Atoi(in)
	if err != nil {
		return 0, ErrInvalidUseCount
	}
	if n <= 0 {
		if s.policy.CoerceNonPositiveUses {
			return models.UnlimitedUses, nil
		}
		return 0, ErrInvalidUseCount
	}
	return n, nil
}

func validateURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrInvalidURL
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return "", ErrInvalidURL
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", ErrInvalidURL
	}
	if parsed.Host == "" {
		return "", ErrInvalidURL
	}
	return raw, nil
}
