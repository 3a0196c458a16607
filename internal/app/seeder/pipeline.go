// Package seeder fills a development database with fake users, posts,
// threaded comments and likes. Every write goes through the regular
// services, so seeded data obeys the same invariants as live traffic.
package seeder

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/go-faker/faker/v4"
	"github.com/google/uuid"

	"github.com/heartmarshall/karmafeed-backend/internal/domain"
	"github.com/heartmarshall/karmafeed-backend/internal/service/content"
	"github.com/heartmarshall/karmafeed-backend/internal/service/like"
	"github.com/heartmarshall/karmafeed-backend/internal/service/user"
	"github.com/heartmarshall/karmafeed-backend/pkg/ctxutil"
)

// allPhases defines the canonical execution order.
var allPhases = []string{"users", "posts", "comments", "likes"}

type registrar interface {
	Register(ctx context.Context, input user.RegisterInput) (*user.RegisterResult, error)
}

type publisher interface {
	CreatePost(ctx context.Context, input content.CreatePostInput) (*domain.Post, error)
	CreateComment(ctx context.Context, input content.CreateCommentInput) (*domain.Comment, error)
}

type toggler interface {
	Toggle(ctx context.Context, input like.ToggleInput) (*domain.ToggleResult, error)
}

// Account is a seeded user with a ready-to-use access token.
type Account struct {
	ID          uuid.UUID
	Username    string
	AccessToken string
}

// PhaseResult holds the outcome of a single pipeline phase.
type PhaseResult struct {
	Inserted int
	Errors   int
	Duration time.Duration
	Err      error
}

// Pipeline orchestrates the seeding phases.
type Pipeline struct {
	log      *slog.Logger
	users    registrar
	content  publisher
	likes    toggler
	cfg      Config
	rnd      *rand.Rand
	results  map[string]PhaseResult
	accounts []Account
	posts    []*domain.Post
	comments []*domain.Comment
}

// NewPipeline creates a new Pipeline.
func NewPipeline(log *slog.Logger, users registrar, content publisher, likes toggler, cfg Config) *Pipeline {
	return &Pipeline{
		log:     log,
		users:   users,
		content: content,
		likes:   likes,
		cfg:     cfg,
		rnd:     rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15)),
		results: make(map[string]PhaseResult),
	}
}

// Results returns phase results after Run completes.
func (p *Pipeline) Results() map[string]PhaseResult {
	return p.results
}

// Accounts returns the users created by the users phase.
func (p *Pipeline) Accounts() []Account {
	return p.accounts
}

// HasErrors returns true if any phase recorded errors.
func (p *Pipeline) HasErrors() bool {
	for _, r := range p.results {
		if r.Err != nil || r.Errors > 0 {
			return true
		}
	}
	return false
}

// Run executes the pipeline. If phases is non-empty, only the listed
// phases run. Later phases build on earlier ones, so skipping "users"
// leaves nothing to post with.
func (p *Pipeline) Run(ctx context.Context, phases []string) error {
	toRun := allPhases
	if len(phases) > 0 {
		filter := make(map[string]bool, len(phases))
		for _, ph := range phases {
			filter[ph] = true
		}
		var filtered []string
		for _, ph := range allPhases {
			if filter[ph] {
				filtered = append(filtered, ph)
			}
		}
		toRun = filtered
	}

	for _, phase := range toRun {
		if err := ctx.Err(); err != nil {
			return err
		}

		start := time.Now()
		p.log.Info("starting phase", slog.String("phase", phase))

		var result PhaseResult
		switch phase {
		case "users":
			result = p.runUsers(ctx)
		case "posts":
			result = p.runPosts(ctx)
		case "comments":
			result = p.runComments(ctx)
		case "likes":
			result = p.runLikes(ctx)
		}
		result.Duration = time.Since(start)
		p.results[phase] = result

		if result.Err != nil {
			p.log.Warn("phase failed",
				slog.String("phase", phase),
				slog.String("error", result.Err.Error()),
				slog.Duration("duration", result.Duration),
			)
			return fmt.Errorf("phase %s: %w", phase, result.Err)
		}
		p.log.Info("phase completed",
			slog.String("phase", phase),
			slog.Int("inserted", result.Inserted),
			slog.Int("errors", result.Errors),
			slog.Duration("duration", result.Duration),
		)
	}

	p.log.Info("pipeline completed", slog.Int("phases_run", len(toRun)))
	return nil
}

func (p *Pipeline) runUsers(ctx context.Context) PhaseResult {
	var result PhaseResult
	for i := range p.cfg.Users {
		name := fakeUsername(i)
		res, err := p.users.Register(ctx, user.RegisterInput{
			Username: name,
			Email:    name + "@example.com",
			Bio:      faker.Sentence(),
		})
		if err != nil {
			p.log.Warn("register failed", slog.String("username", name), slog.String("error", err.Error()))
			result.Errors++
			continue
		}
		p.accounts = append(p.accounts, Account{
			ID:          res.User.ID,
			Username:    res.User.Username,
			AccessToken: res.AccessToken,
		})
		result.Inserted++
	}
	if len(p.accounts) == 0 {
		result.Err = fmt.Errorf("no users registered")
	}
	return result
}

func (p *Pipeline) runPosts(ctx context.Context) PhaseResult {
	var result PhaseResult
	for _, acc := range p.accounts {
		actx := ctxutil.WithUserID(ctx, acc.ID)
		for range p.cfg.PostsPerUser {
			post, err := p.content.CreatePost(actx, content.CreatePostInput{Content: fakeMarkdown()})
			if err != nil {
				return PhaseResult{Inserted: result.Inserted, Err: fmt.Errorf("create post: %w", err)}
			}
			p.posts = append(p.posts, post)
			result.Inserted++
		}
	}
	return result
}

// runComments builds threads: each new comment replies to a random earlier
// comment on the same post that can still take replies, or starts a new
// root.
func (p *Pipeline) runComments(ctx context.Context) PhaseResult {
	var result PhaseResult
	if len(p.accounts) == 0 {
		return result
	}
	for _, post := range p.posts {
		var thread []*domain.Comment
		for range p.cfg.CommentsPerPost {
			author := p.accounts[p.rnd.IntN(len(p.accounts))]
			input := content.CreateCommentInput{PostID: post.ID, Content: faker.Sentence()}
			if len(thread) > 0 && p.rnd.IntN(2) == 0 {
				parent := thread[p.rnd.IntN(len(thread))]
				if parent.Depth < domain.MaxCommentParentDepth {
					input.ParentID = &parent.ID
				}
			}

			c, err := p.content.CreateComment(ctxutil.WithUserID(ctx, author.ID), input)
			if err != nil {
				return PhaseResult{Inserted: result.Inserted, Err: fmt.Errorf("create comment: %w", err)}
			}
			thread = append(thread, c)
			p.comments = append(p.comments, c)
			result.Inserted++
		}
	}
	return result
}

func (p *Pipeline) runLikes(ctx context.Context) PhaseResult {
	var result PhaseResult
	for _, acc := range p.accounts {
		actx := ctxutil.WithUserID(ctx, acc.ID)
		for _, post := range p.posts {
			if post.AuthorID == acc.ID || p.rnd.Float64() >= p.cfg.LikeRatio {
				continue
			}
			p.toggle(actx, like.ToggleInput{Kind: domain.TargetPost, TargetID: post.ID}, &result)
		}
		for _, c := range p.comments {
			if c.AuthorID == acc.ID || p.rnd.Float64() >= p.cfg.LikeRatio {
				continue
			}
			p.toggle(actx, like.ToggleInput{Kind: domain.TargetComment, TargetID: c.ID}, &result)
		}
	}
	return result
}

func (p *Pipeline) toggle(ctx context.Context, input like.ToggleInput, result *PhaseResult) {
	res, err := p.likes.Toggle(ctx, input)
	if err != nil {
		p.log.Warn("like failed", slog.String("target", input.Target().String()), slog.String("error", err.Error()))
		result.Errors++
		return
	}
	if res.Liked {
		result.Inserted++
	}
}

func fakeUsername(i int) string {
	base := strings.ToLower(faker.Username())
	base = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			return r
		}
		return -1
	}, base)
	if len(base) > 30 {
		base = base[:30]
	}
	if base == "" {
		base = "user"
	}
	return fmt.Sprintf("%s_%d", base, i)
}

func fakeMarkdown() string {
	return fmt.Sprintf("**%s**\n\n%s", faker.Sentence(), faker.Paragraph())
}
