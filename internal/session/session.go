package session

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"rpg-server/internal/messaging"
	"rpg-server/internal/metrics"
	"rpg-server/internal/models"
	"rpg-server/internal/repository"
	"rpg-server/internal/service"
	"rpg-server/internal/worker"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	maxLineLength  = 4096
	publishTimeout = 5 * time.Second
)

// State - состояние сессии.
type State int

const (
	StateCharacterSelect State = iota
	StateMainMenu
	StateEnded
)

// Dependencies - сервисы, общие для всех сессий процесса.
type Dependencies struct {
	Game     *service.GameService
	Saves    repository.SaveRepository
	Events   messaging.EventPublisher
	Metrics  *metrics.Metrics
	AutoMine worker.AutoMinerConfig
	Logger   *zap.Logger
}

// Session ведет одного игрока через текстовый интерфейс: выбор персонажа, главное меню, бои.
//
// Игрок меняется только под mu. Run держит mu все время, кроме ожидания ввода,
// поэтому автодобыча начисляет монеты, пока сессия ждет команду.
type Session struct {
	id     string
	in     *bufio.Reader
	out    *bufio.Writer
	deps   Dependencies
	logger *zap.Logger

	mu       sync.Mutex
	ctx      context.Context
	state    State
	player   *models.Player
	miner    *worker.AutoMiner
	stopping []*worker.AutoMiner
}

// New создает сессию поверх произвольного потока строк.
func New(in io.Reader, out io.Writer, deps Dependencies) *Session {
	if deps.Events == nil {
		deps.Events = messaging.NewNopPublisher()
	}
	if deps.Metrics == nil {
		deps.Metrics = metrics.New()
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	id := uuid.NewString()
	return &Session{
		id:     id,
		in:     bufio.NewReaderSize(in, maxLineLength),
		out:    bufio.NewWriter(out),
		deps:   deps,
		logger: deps.Logger.Named("Session").With(zap.String("sessionID", id)),
		state:  StateCharacterSelect,
	}
}

// ID возвращает идентификатор сессии (используется в событиях и логах).
func (s *Session) ID() string {
	return s.id
}

// State возвращает текущее состояние сессии.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Player возвращает копию текущего игрока или nil до выбора персонажа.
func (s *Session) Player() *models.Player {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.player == nil {
		return nil
	}
	cp := *s.player
	cp.Inventory = append(make([]string, 0, len(s.player.Inventory)), s.player.Inventory...)
	return &cp
}

// Run выполняет сессию до выхода, поражения, конца ввода или отмены контекста.
// Конец ввода - штатное завершение, ошибкой не считается.
func (s *Session) Run(ctx context.Context) error {
	s.deps.Metrics.SessionStarted()
	defer s.deps.Metrics.SessionEnded()

	s.mu.Lock()
	s.ctx = ctx
	err := s.loop()
	s.state = StateEnded
	if s.miner != nil {
		s.stopping = append(s.stopping, s.miner)
		s.miner = nil
	}
	s.flush()
	s.mu.Unlock()
	s.reapMiners()

	if errors.Is(err, io.EOF) {
		s.logger.Info("Input closed, session ended")
		return nil
	}
	if err != nil {
		s.logger.Warn("Session ended with error", zap.Error(err))
		return err
	}
	s.logger.Info("Session ended")
	return nil
}

func (s *Session) loop() error {
	s.println("Welcome to the CLI-Based RPG Game!")
	if err := s.characterSelect(); err != nil {
		return err
	}
	s.state = StateMainMenu
	s.logger.Info("Character selected",
		zap.String("player", s.player.Name),
		zap.String("mode", string(s.player.Mode)),
		zap.Int("level", s.player.Level),
	)

	for {
		if err := s.ctx.Err(); err != nil {
			return err
		}
		s.println("")
		mining := s.autoMining()
		s.println(statusLine(s.player, mining))
		s.print(mainMenu(s.player, mining))

		line, err := s.readLine("> ")
		if err != nil {
			return err
		}
		done, err := s.dispatch(strings.ToLower(line))
		if err != nil || done {
			return err
		}
	}
}

// readLine печатает приглашение и ждет строку. На время ожидания mu отпускается.
// Слишком длинная строка отбрасывается целиком, приглашение повторяется.
func (s *Session) readLine(prompt string) (string, error) {
	for {
		s.print(prompt)
		s.flush()

		s.mu.Unlock()
		s.reapMiners()
		line, tooLong, err := readBoundedLine(s.in)
		s.mu.Lock()

		if err != nil {
			if errors.Is(err, io.EOF) {
				return "", io.EOF
			}
			return "", fmt.Errorf("read input: %w", err)
		}
		if err := s.ctx.Err(); err != nil {
			return "", err
		}
		if tooLong {
			s.logger.Debug("Discarded overlong input line")
			s.println("Invalid input. Line is too long.")
			continue
		}
		return strings.TrimSpace(line), nil
	}
}

// readBoundedLine читает строку до '\n'. Строка длиннее maxLineLength дочитывается
// до конца без накопления и возвращается с tooLong.
// Последняя строка без перевода строки тоже считается строкой.
func readBoundedLine(r *bufio.Reader) (line string, tooLong bool, err error) {
	var buf []byte
	seen := false
	for {
		chunk, err := r.ReadSlice('\n')
		if len(chunk) > 0 {
			seen = true
		}
		if !tooLong {
			buf = append(buf, chunk...)
			if len(bytes.TrimRight(buf, "\r\n")) > maxLineLength {
				tooLong = true
				buf = nil
			}
		}
		switch {
		case err == nil:
			return string(buf), tooLong, nil
		case errors.Is(err, bufio.ErrBufferFull):
			continue
		case errors.Is(err, io.EOF) && seen:
			return string(buf), tooLong, nil
		default:
			return "", false, err
		}
	}
}

// reapMiners останавливает отключенные автодобытчики. Вызывается без mu:
// Stop ждет горутину, которая сама может ждать mu.
func (s *Session) reapMiners() {
	s.mu.Lock()
	pending := s.stopping
	s.stopping = nil
	s.mu.Unlock()

	for _, m := range pending {
		m.Stop()
	}
}

func (s *Session) print(text string) {
	_, _ = s.out.WriteString(text)
}

func (s *Session) println(text string) {
	_, _ = s.out.WriteString(text)
	_ = s.out.WriteByte('\n')
}

func (s *Session) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(s.out, format, args...)
}

func (s *Session) flush() {
	if err := s.out.Flush(); err != nil {
		s.logger.Debug("Failed to flush output", zap.Error(err))
	}
}

// publish отправляет событие; ошибки брокера только логируются.
func (s *Session) publish(eventType messaging.EventType, payload map[string]any) {
	ctx, cancel := context.WithTimeout(s.ctx, publishTimeout)
	defer cancel()

	ev := messaging.NewGameEvent(s.id, s.player.Name, eventType, payload)
	if err := s.deps.Events.PublishGameEvent(ctx, ev); err != nil {
		s.logger.Warn("Failed to publish game event", zap.String("type", string(eventType)), zap.Error(err))
	}
}
