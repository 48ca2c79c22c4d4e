package transport

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"example.com/dice-duel/internal/common/uuid"
	"example.com/dice-duel/internal/game"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"
)

type Config struct {
	SendBuffer      int           // per-connection outbound queue
	PingInterval    time.Duration // server pings; read deadline is twice this
	WriteWait       time.Duration
	MaxMessageBytes int64
	RateLimit       float64 // inbound messages per second per session
	RateBurst       int
}

func (c Config) withDefaults() Config {
	if c.SendBuffer <= 0 {
		c.SendBuffer = 64
	}
	if c.PingInterval <= 0 {
		c.PingInterval = 25 * time.Second
	}
	if c.WriteWait <= 0 {
		c.WriteWait = 10 * time.Second
	}
	if c.MaxMessageBytes <= 0 {
		c.MaxMessageBytes = 4096
	}
	if c.RateLimit <= 0 {
		c.RateLimit = 10
	}
	if c.RateBurst <= 0 {
		c.RateBurst = 20
	}
	return c
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type Server struct {
	cfg   Config
	table *game.Table
	hub   *Hub
	ids   uuid.UUID
	log   *slog.Logger
}

func NewServer(cfg Config, table *game.Table, hub *Hub, ids uuid.UUID, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		cfg:   cfg.withDefaults(),
		table: table,
		hub:   hub,
		ids:   ids,
		log:   log,
	}
}

func (s *Server) RegisterRoutes(r chi.Router) {
	r.Get("/ws", s.handleWS)
}

// handleWS runs one session from upgrade to disconnect.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", "err", err)
		return
	}

	id := s.ids.NewUUID()
	log := s.log.With("session", id)
	cc := newClientConn(id, ws, s.cfg.SendBuffer)
	s.hub.register(cc)
	log.Info("session connected", "remote", r.RemoteAddr)

	go cc.writePump(s.cfg.PingInterval, s.cfg.WriteWait)

	s.hub.SendTo(id, envelope(msgConnected, ConnectedPayload{SessionID: id}))
	s.table.WithSnapshot(func(st game.StatePayload) {
		s.hub.SendTo(id, envelope(string(game.EventGameStateUpdate), st))
	})

	s.readPump(cc, log)

	// unregister first so the departing session is not sent its own disconnect
	s.hub.unregister(id)
	s.table.Leave(id)
	log.Info("session disconnected")
}

func (s *Server) readPump(cc *ClientConn, log *slog.Logger) {
	ws := cc.ws
	pongWait := 2 * s.cfg.PingInterval

	ws.SetReadLimit(s.cfg.MaxMessageBytes)
	_ = ws.SetReadDeadline(time.Now().Add(pongWait))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	limiter := rate.NewLimiter(rate.Limit(s.cfg.RateLimit), s.cfg.RateBurst)

	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug("read failed", "err", err)
			}
			return
		}

		if !limiter.Allow() {
			s.sendError(cc.id, "rate_limited", "too many messages")
			continue
		}

		var env Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			s.sendError(cc.id, "bad_json", "invalid json")
			continue
		}
		s.dispatch(cc.id, env, log)
	}
}

func (s *Server) dispatch(id string, env Envelope, log *slog.Logger) {
	switch env.Type {
	case msgJoinGame:
		var p JoinGamePayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			s.sendError(id, "bad_input", "invalid payload")
			return
		}
		if err := s.table.Join(id, p.PlayerName); err != nil {
			s.reject(id, err, log)
		}

	case msgRollDice:
		if _, err := s.table.Roll(id); err != nil {
			s.reject(id, err, log)
		}

	case msgNewGame:
		s.table.NewGame()

	default:
		s.sendError(id, "unknown_type", "unknown message type")
	}
}

// reject reports a refused request to the requester only.
func (s *Server) reject(id string, err error, log *slog.Logger) {
	log.Debug("request rejected", "err", err)
	if errors.Is(err, game.ErrGameFull) {
		s.hub.SendTo(id, Envelope{Type: msgGameFull, Payload: json.RawMessage("null")})
		return
	}
	s.sendError(id, errorCode(err), err.Error())
}

func (s *Server) sendError(id, code, message string) {
	s.hub.SendTo(id, envelope(msgError, ErrorPayload{Code: code, Message: message}))
}

func errorCode(err error) string {
	switch {
	case errors.Is(err, game.ErrEmptyName):
		return "empty_name"
	case errors.Is(err, game.ErrAlreadyJoined):
		return "already_joined"
	case errors.Is(err, game.ErrNotYourTurn):
		return "not_your_turn"
	case errors.Is(err, game.ErrGameNotPlaying):
		return "game_not_playing"
	case errors.Is(err, game.ErrTurnLimitReached):
		return "turn_limit_reached"
	case errors.Is(err, game.ErrGameFull):
		return "game_full"
	default:
		return "internal"
	}
}
