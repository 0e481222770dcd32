// Package service contains the word-selection bandit workflows
package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"math/rand"
	"sort"
	"strconv"
	"strings"
	"time"

	"inkarena/internal/core/bandit"
	"inkarena/internal/modkit/repokit"
	perr "inkarena/internal/platform/errors"
	"inkarena/internal/platform/logger"
	"inkarena/internal/services/slate/domain"
	"inkarena/internal/services/slate/repo"
)

// Service defines the slate service contract
type Service interface {
	domain.ServicePort
}

const (
	// DefaultSlateSize is the stock number of words per slate
	DefaultSlateSize = 3

	// slateTTL keeps a served slate addressable for funnel events
	slateTTL = 7 * 24 * time.Hour

	// aggregatorLockTTL bounds one score-update pass
	aggregatorLockTTL = 30 * time.Second
)

// stock uncertainty tuning, stored alongside the bandit config
const (
	defaultUncertaintyDamping = 0.001
	defaultUncertaintyGrowth  = 0.05
)

// Svc implements the slate service
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	locker repokit.Locker
	log    logger.Logger

	// Now and Rand are swappable for tests
	Now  func() time.Time
	Rand *rand.Rand
}

// New constructs a slate service
func New(kv repokit.KV, binder repokit.Binder[repo.Repo]) *Svc {
	if kv == nil {
		panic("slate.Service requires a non nil KV")
	}
	if binder == nil {
		panic("slate.Service requires a non nil Repo binder")
	}
	return &Svc{
		Repo:   binder.Bind(kv),
		binder: binder,
		locker: repokit.NewLocker(kv),
		log:    *logger.Named("slate"),
		Now:    func() time.Time { return time.Now().UTC() },
		Rand:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// SlateID derives the deterministic id for a word set: the first 12 hex
// of sha256 over the community and the sorted members. Same words, same id
func SlateID(community string, words []string) string {
	sorted := make([]string, len(words))
	copy(sorted, words)
	sort.Strings(sorted)
	sum := sha256.Sum256([]byte(community + "\n" + strings.Join(sorted, "\n")))
	return hex.EncodeToString(sum[:])[:12]
}

// GenerateSlate selects count words by decayed UCB with one exploration
// draw, persists the slate, and stamps lastServed for the chosen words
func (s *Svc) GenerateSlate(ctx context.Context, community string, count int) (domain.Slate, error) {
	if community == "" {
		return domain.Slate{}, perr.InvalidArgf("community required")
	}
	if count <= 0 {
		count = DefaultSlateSize
	}

	cfg, err := s.Config(ctx)
	if err != nil {
		return domain.Slate{}, err
	}
	words, err := s.Repo.ActiveWords(ctx, community)
	if err != nil {
		return domain.Slate{}, err
	}
	if len(words) < count {
		return domain.Slate{}, perr.InvalidArgf("insufficient words: have %d, need %d", len(words), count)
	}
	uncertainty, err := s.Repo.Uncertainty(ctx, community)
	if err != nil {
		return domain.Slate{}, err
	}
	lastServed, err := s.Repo.LastServed(ctx, community)
	if err != nil {
		return domain.Slate{}, err
	}

	now := s.Now()
	type cand struct {
		word string
		ucb  float64
	}
	cands := make([]cand, 0, len(words))
	for _, m := range words {
		score := m.Score
		if ts, ok := lastServed[m.Member]; ok {
			hours := now.Sub(time.Unix(ts, 0)).Hours()
			score = bandit.Decay(score, cfg.ScoreDecayRate, hours)
		}
		cands = append(cands, cand{
			word: m.Member,
			ucb:  bandit.UCB(score, uncertainty[m.Member], cfg.UCBConstant),
		})
	}
	// highest UCB first, alphabetical tiebreak keeps selection stable
	sort.Slice(cands, func(i, j int) bool {
		if cands[i].ucb != cands[j].ucb {
			return cands[i].ucb > cands[j].ucb
		}
		return cands[i].word < cands[j].word
	})

	chosen := make([]string, 0, count)
	for _, c := range cands[:count] {
		chosen = append(chosen, c.word)
	}

	// single exploration draw: one slot swaps for a random word outside the top
	if len(cands) > count && s.Rand.Float64() < cfg.ExplorationRate {
		slot := s.Rand.Intn(count)
		pool := cands[count:]
		chosen[slot] = pool[s.Rand.Intn(len(pool))].word
	}

	slate := domain.Slate{
		ID:        SlateID(community, chosen),
		Community: community,
		Words:     chosen,
		CreatedAt: now,
	}
	if err := s.Repo.SaveSlate(ctx, slate, slateTTL); err != nil {
		return domain.Slate{}, err
	}
	if err := s.Repo.TouchLastServed(ctx, community, now.Unix(), chosen); err != nil {
		return domain.Slate{}, err
	}
	return slate, nil
}

// RecordImpression counts a serve for every word on the slate.
// Unknown or expired slates are skipped quietly: the client can outlive
// the slate TTL and that is not an error
func (s *Svc) RecordImpression(ctx context.Context, slateID string) error {
	if slateID == "" {
		return perr.InvalidArgf("slate id required")
	}
	slate, ok, err := s.Repo.LoadSlate(ctx, slateID)
	if err != nil {
		return err
	}
	if !ok {
		s.log.Debug().Str("slate_id", slateID).Msg("impression for expired slate, skipping")
		return nil
	}
	for _, w := range slate.Words {
		if err := s.Repo.BumpFunnel(ctx, slate.Community, w, repo.StageServed, 1); err != nil {
			return err
		}
	}
	return nil
}

// RecordPick counts the selection of one word from a slate
func (s *Svc) RecordPick(ctx context.Context, slateID, word string) error {
	if slateID == "" || word == "" {
		return perr.InvalidArgf("slate id and word required")
	}
	slate, ok, err := s.Repo.LoadSlate(ctx, slateID)
	if err != nil {
		return err
	}
	if !ok {
		s.log.Debug().Str("slate_id", slateID).Msg("pick for expired slate, skipping")
		return nil
	}
	found := false
	for _, w := range slate.Words {
		if w == word {
			found = true
			break
		}
	}
	if !found {
		return perr.InvalidArgf("word %q is not on slate %s", word, slateID)
	}
	return s.Repo.BumpFunnel(ctx, slate.Community, word, repo.StagePicked, 1)
}

// RecordPublish counts a published drawing for a word
func (s *Svc) RecordPublish(ctx context.Context, community, word string) error {
	if community == "" || word == "" {
		return perr.InvalidArgf("community and word required")
	}
	return s.Repo.BumpFunnel(ctx, community, word, repo.StagePosted, 1)
}

// Config returns the stored bandit tuning with every field clamped
func (s *Svc) Config(ctx context.Context) (domain.Config, error) {
	fields, err := s.Repo.Config(ctx)
	if err != nil {
		return domain.Config{}, err
	}
	stock := bandit.Default()
	cfg := domain.Config{
		ExplorationRate:    readF(fields, "exploration_rate", stock.ExplorationRate),
		ZScoreClamp:        readF(fields, "z_score_clamp", stock.ZScoreClamp),
		WeightPickRate:     readF(fields, "weight_pick_rate", stock.WeightPickRate),
		WeightPostRate:     readF(fields, "weight_post_rate", stock.WeightPostRate),
		UCBConstant:        readF(fields, "ucb_constant", stock.UCBConstant),
		ScoreDecayRate:     readF(fields, "score_decay_rate", stock.ScoreDecayRate),
		UncertaintyDamping: readF(fields, "uncertainty_damping", defaultUncertaintyDamping),
		UncertaintyGrowth:  readF(fields, "uncertainty_growth", defaultUncertaintyGrowth),
	}
	return clampConfig(cfg), nil
}

// SetConfig stores the bandit tuning; values are clamped again on read
func (s *Svc) SetConfig(ctx context.Context, cfg domain.Config) error {
	cfg = clampConfig(cfg)
	return s.Repo.SetConfig(ctx, map[string]string{
		"exploration_rate":    formatF(cfg.ExplorationRate),
		"z_score_clamp":       formatF(cfg.ZScoreClamp),
		"weight_pick_rate":    formatF(cfg.WeightPickRate),
		"weight_post_rate":    formatF(cfg.WeightPostRate),
		"ucb_constant":        formatF(cfg.UCBConstant),
		"score_decay_rate":    formatF(cfg.ScoreDecayRate),
		"uncertainty_damping": formatF(cfg.UncertaintyDamping),
		"uncertainty_growth":  formatF(cfg.UncertaintyGrowth),
	})
}

func clampConfig(c domain.Config) domain.Config {
	b := bandit.Config{
		ExplorationRate: c.ExplorationRate,
		ZScoreClamp:     c.ZScoreClamp,
		WeightPickRate:  c.WeightPickRate,
		WeightPostRate:  c.WeightPostRate,
		UCBConstant:     c.UCBConstant,
		ScoreDecayRate:  c.ScoreDecayRate,
	}.Clamped()
	c.ExplorationRate = b.ExplorationRate
	c.ZScoreClamp = b.ZScoreClamp
	c.WeightPickRate = b.WeightPickRate
	c.WeightPostRate = b.WeightPostRate
	c.UCBConstant = b.UCBConstant
	c.ScoreDecayRate = b.ScoreDecayRate
	if c.UncertaintyDamping < 0 {
		c.UncertaintyDamping = 0
	}
	if c.UncertaintyGrowth < 0 {
		c.UncertaintyGrowth = 0
	}
	return c
}

func readF(fields map[string]string, key string, def float64) float64 {
	raw, ok := fields[key]
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return def
	}
	return f
}

func formatF(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }
