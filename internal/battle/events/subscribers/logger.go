package subscribers

import (
	"encoding/json"

	"github.com/rs/zerolog"

	"battlesim/internal/battle/events"
)

// LoggerSubscriber logs events to structured logs
type LoggerSubscriber struct {
	id              string
	logger          zerolog.Logger
	logLevel        zerolog.Level
	eventTypeFilter map[string]bool // If non-nil, only log these event types
	devMode         bool            // If true, log full event details
}

// NewLoggerSubscriber creates a new logger subscriber
func NewLoggerSubscriber(id string, logger zerolog.Logger, logLevel zerolog.Level) *LoggerSubscriber {
	return &LoggerSubscriber{
		id:       id,
		logger:   logger.With().Str("subscriber", "event_logger").Logger(),
		logLevel: logLevel,
	}
}

// ID returns the subscriber's unique identifier
func (ls *LoggerSubscriber) ID() string {
	return ls.id
}

// SetEventFilter sets which event types to log (nil means log all)
func (ls *LoggerSubscriber) SetEventFilter(eventTypes []string) {
	if len(eventTypes) == 0 {
		ls.eventTypeFilter = nil
		return
	}

	ls.eventTypeFilter = make(map[string]bool)
	for _, eventType := range eventTypes {
		ls.eventTypeFilter[eventType] = true
	}
}

// SetDevMode enables or disables development mode logging
func (ls *LoggerSubscriber) SetDevMode(enabled bool) {
	ls.devMode = enabled
}

// InterestedIn returns true if the subscriber wants to receive this event type
func (ls *LoggerSubscriber) InterestedIn(eventType string) bool {
	// If no filter is set, interested in all events
	if ls.eventTypeFilter == nil {
		return true
	}
	return ls.eventTypeFilter[eventType]
}

// HandleEvent processes an event by logging it
func (ls *LoggerSubscriber) HandleEvent(event events.Event) {
	eventLogger := ls.logger.With().
		Str("event_type", event.Type()).
		Str("match_id", event.MatchID()).
		Time("timestamp", event.Timestamp()).
		Logger()

	// Create the base event log
	var logEvent *zerolog.Event
	switch ls.logLevel {
	case zerolog.DebugLevel:
		logEvent = eventLogger.Debug()
	case zerolog.InfoLevel:
		logEvent = eventLogger.Info()
	case zerolog.WarnLevel:
		logEvent = eventLogger.Warn()
	case zerolog.ErrorLevel:
		logEvent = eventLogger.Error()
	default:
		logEvent = eventLogger.Info()
	}

	// Add event-specific fields based on type
	switch e := event.(type) {
	case *events.MatchStartedEvent:
		logEvent.
			Int("board_width", e.BoardWidth).
			Int("board_height", e.BoardHeight).
			Int("fleet_size", len(e.Fleet)).
			Str("player1", e.Player1).
			Str("player2", e.Player2).
			Int("starting_player", int(e.StartingPlayer))

	case *events.FleetPlacedEvent:
		logEvent.
			Int("player", int(e.Player)).
			Int("ships", len(e.Ships))

	case *events.AttackResolvedEvent:
		logEvent.
			Int("move", e.Move).
			Int("attacker", int(e.Attacker)).
			Int("defender", int(e.Defender)).
			Int("target_x", e.Result.Coord.X).
			Int("target_y", e.Result.Coord.Y).
			Str("outcome", e.Result.Outcome.String()).
			Int("ship", int(e.Result.Ship))

	case *events.MatchEndedEvent:
		logEvent.
			Int("winner", int(e.Winner)).
			Bool("draw", e.Draw).
			Bool("aborted", e.Aborted).
			Str("reason", e.Reason).
			Int("moves", e.Moves).
			Dur("duration", e.Duration)

	case *events.StateTransitionEvent:
		logEvent.
			Str("from", e.From).
			Str("to", e.To).
			Str("reason", e.Reason)
	}

	// In dev mode, also log the full event as JSON
	if ls.devMode {
		if jsonData, err := json.Marshal(event); err == nil {
			logEvent.RawJSON("event_data", jsonData)
		}
	}

	// Send the log
	logEvent.Msg("Match event")
}
