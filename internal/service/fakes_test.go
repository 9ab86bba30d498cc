package service

import (
	"context"
	"sync"

	"peer-support-be/internal/entity"
	"peer-support-be/internal/repository/contract"
	"peer-support-be/internal/repository/specification"
	"peer-support-be/pkg/llm"

	"github.com/google/uuid"
)

// In-memory doubles for the repository contracts. They cover exactly the
// behavior the services exercise; query specifications are ignored except
// where a test needs them.

type fakeSessionRepo struct {
	mu          sync.Mutex
	sessions    map[uuid.UUID]*entity.TrainingSession
	transcripts map[uuid.UUID][]entity.SessionMessage
	scores      map[uuid.UUID]*entity.SessionScore
	rows        []contract.LeaderboardRow

	leaderboardCalls int
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{
		sessions:    make(map[uuid.UUID]*entity.TrainingSession),
		transcripts: make(map[uuid.UUID][]entity.SessionMessage),
		scores:      make(map[uuid.UUID]*entity.SessionScore),
	}
}

func (f *fakeSessionRepo) Create(_ context.Context, session *entity.TrainingSession) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *session
	f.sessions[session.Id] = &copied
	return nil
}

func (f *fakeSessionRepo) Update(_ context.Context, session *entity.TrainingSession) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *session
	f.sessions[session.Id] = &copied
	return nil
}

func (f *fakeSessionRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.TrainingSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, spec := range specs {
		if byId, ok := spec.(specification.ById); ok {
			session, found := f.sessions[byId.Id]
			if !found {
				return nil, nil
			}
			copied := *session
			copied.Messages = append([]entity.SessionMessage(nil), f.transcripts[byId.Id]...)
			copied.Scores = f.scores[byId.Id]
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeSessionRepo) FindAll(_ context.Context, _ ...specification.Specification) ([]*entity.TrainingSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*entity.TrainingSession, 0, len(f.sessions))
	for _, session := range f.sessions {
		copied := *session
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeSessionRepo) AppendMessage(_ context.Context, message *entity.SessionMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.transcripts[message.SessionId] = append(f.transcripts[message.SessionId], *message)
	return nil
}

func (f *fakeSessionRepo) GetTranscript(_ context.Context, sessionId uuid.UUID) ([]entity.SessionMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]entity.SessionMessage(nil), f.transcripts[sessionId]...), nil
}

func (f *fakeSessionRepo) SaveScores(_ context.Context, scores *entity.SessionScore) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *scores
	f.scores[scores.SessionId] = &copied
	return nil
}

func (f *fakeSessionRepo) GetScores(_ context.Context, sessionId uuid.UUID) (*entity.SessionScore, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.scores[sessionId], nil
}

func (f *fakeSessionRepo) Leaderboard(_ context.Context, _ int) ([]contract.LeaderboardRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.leaderboardCalls++
	return f.rows, nil
}

type fakeUserRepo struct {
	mu          sync.Mutex
	usersByMail map[string]*entity.User
	skillLevels map[uuid.UUID]string
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		usersByMail: make(map[string]*entity.User),
		skillLevels: make(map[uuid.UUID]string),
	}
}

func (f *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *user
	f.usersByMail[user.Email] = &copied
	return nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	return f.Create(context.Background(), user)
}

func (f *fakeUserRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, spec := range specs {
		if byEmail, ok := spec.(specification.ByEmail); ok {
			user, found := f.usersByMail[byEmail.Email]
			if !found {
				return nil, nil
			}
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindAll(_ context.Context, _ ...specification.Specification) ([]*entity.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) Count(_ context.Context, _ ...specification.Specification) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.usersByMail)), nil
}

func (f *fakeUserRepo) UpdateSkillLevel(_ context.Context, userId uuid.UUID, level string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.skillLevels[userId] = level
	return nil
}

// fakeLLM returns scripted replies so conversation flow is deterministic.
type fakeLLM struct {
	reply string
	err   error
}

func (f *fakeLLM) Chat(_ context.Context, _ []llm.Message, _ ...llm.Option) (string, error) {
	return f.reply, f.err
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return f.Chat(ctx, nil, options...)
}
