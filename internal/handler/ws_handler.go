package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"rpg-server/internal/session"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const (
	// Время, разрешенное для записи сообщения клиенту.
	writeWait = 10 * time.Second
	// Время, разрешенное для чтения следующего pong сообщения от клиента.
	pongWait = 60 * time.Second
	// Отправлять пинги клиенту с этим периодом. Должно быть меньше pongWait.
	pingPeriod = (pongWait * 9) / 10
	// Максимальный размер команды от клиента.
	maxMessageSize = 4096
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Клиент - терминальный, проверка Origin не требуется
	CheckOrigin: func(r *http.Request) bool { return true },
}

// SessionHandler запускает игровую сессию на каждое WebSocket-соединение.
// Текстовые сообщения клиента - строки ввода, каждое сообщение сервера - вывод до очередного приглашения.
type SessionHandler struct {
	ctx    context.Context
	deps   session.Dependencies
	logger *zap.Logger

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// NewSessionHandler создает обработчик. Отмена ctx завершает все открытые сессии.
func NewSessionHandler(ctx context.Context, deps session.Dependencies, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{
		ctx:    ctx,
		deps:   deps,
		logger: logger.Named("SessionHandler"),
	}
}

// Wait ждет завершения всех сессий. После вызова новые соединения отклоняются.
func (h *SessionHandler) Wait() {
	h.mu.Lock()
	h.closed = true
	h.mu.Unlock()
	h.wg.Wait()
}

// acquire регистрирует новую сессию, пока обработчик принимает соединения.
func (h *SessionHandler) acquire() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed || h.ctx.Err() != nil {
		return false
	}
	h.wg.Add(1)
	return true
}

// ServeWS обновляет соединение до WebSocket и ведет сессию до ее завершения.
func (h *SessionHandler) ServeWS(c echo.Context) error {
	if !h.acquire() {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "server is shutting down")
	}
	defer h.wg.Done()

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// upgrader уже записал ответ клиенту
		h.logger.Warn("Failed to upgrade connection", zap.Error(err))
		return nil
	}

	ws := &wsConn{conn: conn}
	pr, pw := io.Pipe()
	s := session.New(pr, ws, h.deps)
	log := h.logger.With(zap.String("sessionID", s.ID()), zap.String("remote_ip", c.RealIP()))
	log.Info("WebSocket session started")

	stop := make(chan struct{})
	go ws.readPump(pw, log)
	go ws.pingLoop(stop, log)
	go func() {
		// Сессия замечает отмену только при чтении строки, поэтому закрываем ввод сами
		select {
		case <-h.ctx.Done():
			_ = pw.CloseWithError(io.EOF)
		case <-stop:
		}
	}()

	runErr := s.Run(h.ctx)
	close(stop)
	_ = pr.Close()
	ws.close()

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		log.Warn("WebSocket session failed", zap.Error(runErr))
	}
	log.Info("WebSocket session finished")
	return nil
}

// wsConn сериализует запись в соединение: gorilla/websocket допускает одного писателя.
type wsConn struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

// Write отправляет p одним текстовым сообщением. Сессия пишет в соединение при каждом сбросе буфера.
func (w *wsConn) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	_ = w.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := w.conn.WriteMessage(websocket.TextMessage, p); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (w *wsConn) close() {
	w.mu.Lock()
	_ = w.conn.SetWriteDeadline(time.Now().Add(writeWait))
	_ = w.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session ended"))
	w.mu.Unlock()
	_ = w.conn.Close()
}

// readPump переводит сообщения клиента в строки ввода сессии.
// Закрытие соединения закрывает ввод, и сессия завершается как по концу ввода.
func (w *wsConn) readPump(pw *io.PipeWriter, log *zap.Logger) {
	defer func() { _ = pw.Close() }()

	w.conn.SetReadLimit(maxMessageSize)
	_ = w.conn.SetReadDeadline(time.Now().Add(pongWait))
	w.conn.SetPongHandler(func(string) error {
		return w.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := w.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				log.Warn("WebSocket read error", zap.Error(err))
			}
			return
		}
		_ = w.conn.SetReadDeadline(time.Now().Add(pongWait))
		if len(message) == 0 || message[len(message)-1] != '\n' {
			message = append(message, '\n')
		}
		if _, err := pw.Write(message); err != nil {
			return
		}
	}
}

func (w *wsConn) pingLoop(stop <-chan struct{}, log *zap.Logger) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			w.mu.Lock()
			err := w.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
			w.mu.Unlock()
			if err != nil {
				log.Debug("Failed to send ping", zap.Error(err))
				return
			}
		}
	}
}
