// Package engine implements the conversation state machine. One inbound
// text from a user is interpreted against the user's session state,
// dispatched to the weather client, the user store or the history
// service, and answered through the messaging gateway.
package engine

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/fakhrymubarak/weather-chatbot/internal/advice"
	"github.com/fakhrymubarak/weather-chatbot/internal/config"
	"github.com/fakhrymubarak/weather-chatbot/internal/gateway"
	"github.com/fakhrymubarak/weather-chatbot/internal/history"
	"github.com/fakhrymubarak/weather-chatbot/internal/model"
	"github.com/fakhrymubarak/weather-chatbot/internal/store"
	"github.com/fakhrymubarak/weather-chatbot/internal/weather"
)

// State is the session's position in the conversation.
type State int

const (
	StateIdle State = iota
	StateAwaitingCityForSet
	StateAwaitingCityForLookup
	StateChoosingCitySource
	StateChoosingWeatherType
	StateAwaitingCityPairForCompare
)

const (
	msgGreeting      = "Привет! Выберите действие:"
	msgChooseAction  = "Выберите действие:"
	msgUnknown       = "❓ Используйте меню или /start."
	msgEnterCity     = "Введите город:"
	msgEnterSetCity  = "Введите город для установки по умолчанию:"
	msgEnterPair     = "Введите два города через пробел (например: Москва Сочи):"
	msgExactlyTwo    = "Введите ровно два города через пробел."
	msgPickFromMenu  = "Выберите из меню."
	msgCityNotFound  = "❌ Город не найден. Попробуйте снова."
	msgNoDefaultCity = "❌ Город по умолчанию не установлен."
	msgNoCityInState = "❌ Ошибка: город не задан."
	msgWeatherFailed = "❌ Не удалось получить погоду."
	msgForecastFail  = "❌ Не удалось получить прогноз."
	msgCompareFailed = "❌ Один из городов не найден."
	msgEmptyStats    = "📊 История пуста."
	msgEmptyExport   = "📭 Нет данных для экспорта."
	msgInternalError = "❌ Произошла ошибка. Попробуйте ещё раз."
	msgNoArchive     = "📂 Вчерашняя погода не найдена в архиве.\n" +
		"Запрашивайте погоду ежедневно, чтобы она сохранялась!"
	exportCaption = "📄 Ваша история погоды"
)

// session is the transient per-user conversation state. It is cleared on
// /start, on "back" and on completion of any terminal action.
type session struct {
	mu    sync.Mutex
	state State
	city  string
}

func (s *session) clear() {
	s.state = StateIdle
	s.city = ""
}

// Engine drives the conversation for all users. Sessions of different
// users are independent; messages of one user are handled one at a time.
type Engine struct {
	weather weather.Client
	store   store.Store
	history *history.Service

	mu       sync.Mutex
	sessions map[int64]*session

	now func() time.Time
}

func New(wc weather.Client, st store.Store, hs *history.Service) *Engine {
	return &Engine{
		weather:  wc,
		store:    st,
		history:  hs,
		sessions: make(map[int64]*session),
		now:      time.Now,
	}
}

// State reports the current session state of a user.
func (e *Engine) State(userID int64) State {
	sess := e.session(userID)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.state
}

// Handle processes one inbound text. Nothing here may crash the session
// loop: every failure is answered with a message, and an unexpected panic
// is logged and answered generically.
func (e *Engine) Handle(ctx context.Context, gw gateway.Gateway, userID int64, text string) {
	defer func() {
		if r := recover(); r != nil {
			config.GetLogger().Errorw("panic while handling message", "user_id", userID, "panic", r)
			e.text(gw, userID, msgInternalError)
		}
	}()

	text = strings.TrimSpace(text)
	sess := e.session(userID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	// Commands bypass the state machine entirely.
	switch classify(text) {
	case CmdStart:
		sess.clear()
		e.menu(gw, userID, msgGreeting, mainMenu)
		return
	case CmdUnknownSlash:
		e.text(gw, userID, msgUnknown)
		return
	}

	switch sess.state {
	case StateAwaitingCityForSet:
		e.handleSetCity(ctx, gw, userID, sess, text)
	case StateAwaitingCityForLookup:
		e.handleLookupCity(ctx, gw, userID, sess, text)
	case StateChoosingCitySource:
		e.handleCitySource(gw, userID, sess, classify(text))
	case StateChoosingWeatherType:
		e.handleWeatherType(ctx, gw, userID, sess, classify(text))
	case StateAwaitingCityPairForCompare:
		e.handleComparePair(ctx, gw, userID, sess, text)
	default:
		e.handleMainMenu(gw, userID, sess, classify(text))
	}
}

func (e *Engine) handleMainMenu(gw gateway.Gateway, userID int64, sess *session, cmd Command) {
	switch cmd {
	case CmdWeather:
		if city, ok := e.store.DefaultCity(userID); ok {
			e.menu(gw, userID, "Ваш город по умолчанию: "+city+"\nВыберите:", sourceMenu)
			sess.state = StateChoosingCitySource
		} else {
			e.text(gw, userID, msgEnterCity)
			sess.state = StateAwaitingCityForLookup
		}
	case CmdSetCity:
		e.text(gw, userID, msgEnterSetCity)
		sess.state = StateAwaitingCityForSet
	case CmdCompare:
		e.text(gw, userID, msgEnterPair)
		sess.state = StateAwaitingCityPairForCompare
	case CmdStats:
		e.showStats(gw, userID)
	case CmdExport:
		e.exportCSV(gw, userID)
	default:
		e.text(gw, userID, msgUnknown)
	}
}

// handleSetCity validates the typed city against the provider before
// persisting it as the default. Both outcomes end the flow.
func (e *Engine) handleSetCity(ctx context.Context, gw gateway.Gateway, userID int64, sess *session, city string) {
	if _, err := e.weather.Current(ctx, city); err == nil {
		e.store.SetDefaultCity(userID, city)
		e.text(gw, userID, "✅ Город по умолчанию: "+city)
	} else {
		e.text(gw, userID, msgCityNotFound)
	}
	e.finish(gw, userID, sess)
}

// handleLookupCity validates the typed city and moves on to the
// weather-type menu. On failure the state is kept so the user can retry.
func (e *Engine) handleLookupCity(ctx context.Context, gw gateway.Gateway, userID int64, sess *session, city string) {
	if _, err := e.weather.Current(ctx, city); err != nil {
		e.text(gw, userID, msgCityNotFound)
		return
	}
	e.showTypeMenu(gw, userID, sess, city)
}

func (e *Engine) handleCitySource(gw gateway.Gateway, userID int64, sess *session, cmd Command) {
	switch cmd {
	case CmdBack:
		e.finish(gw, userID, sess)
	case CmdDefaultCity:
		if city, ok := e.store.DefaultCity(userID); ok {
			e.showTypeMenu(gw, userID, sess, city)
		} else {
			e.text(gw, userID, msgNoDefaultCity)
			e.finish(gw, userID, sess)
		}
	case CmdNewCity:
		e.text(gw, userID, msgEnterCity)
		sess.state = StateAwaitingCityForLookup
	default:
		e.text(gw, userID, msgPickFromMenu)
	}
}

func (e *Engine) handleWeatherType(ctx context.Context, gw gateway.Gateway, userID int64, sess *session, cmd Command) {
	city := sess.city
	if city == "" {
		e.text(gw, userID, msgNoCityInState)
		e.finish(gw, userID, sess)
		return
	}

	switch cmd {
	case CmdBack:
		e.finish(gw, userID, sess)
		return
	case CmdNow:
		if reading, err := e.weather.Current(ctx, city); err == nil {
			e.text(gw, userID, advice.RenderCurrent(reading))
			e.store.AppendHistory(userID, model.WeatherEvent{
				City:      reading.City,
				Temp:      reading.Temp,
				Desc:      reading.Desc,
				Timestamp: e.now().Format(time.RFC3339),
			})
		} else {
			e.text(gw, userID, msgWeatherFailed)
		}
	case CmdYesterday:
		if ev, err := e.history.FindYesterday(userID, city); err == nil {
			e.text(gw, userID, advice.RenderYesterday(city, ev))
		} else {
			e.text(gw, userID, msgNoArchive)
		}
	case CmdFiveDay:
		if days, err := e.weather.Forecast(ctx, city); err == nil {
			e.text(gw, userID, advice.RenderForecast(city, days))
		} else {
			e.text(gw, userID, msgForecastFail)
		}
	default:
		e.text(gw, userID, msgPickFromMenu)
		return
	}
	e.finish(gw, userID, sess)
}

// handleComparePair expects exactly two whitespace-separated city names.
// A wrong token count reprompts; any fetch failure is reported generically
// without saying which city failed. Nothing is archived either way.
func (e *Engine) handleComparePair(ctx context.Context, gw gateway.Gateway, userID int64, sess *session, text string) {
	cities := strings.Fields(text)
	if len(cities) != 2 {
		e.text(gw, userID, msgExactlyTwo)
		return
	}
	a, errA := e.weather.Current(ctx, cities[0])
	b, errB := e.weather.Current(ctx, cities[1])
	if errA != nil || errB != nil {
		e.text(gw, userID, msgCompareFailed)
	} else {
		e.text(gw, userID, advice.RenderComparison(cities[0], a, cities[1], b))
	}
	e.finish(gw, userID, sess)
}

func (e *Engine) showStats(gw gateway.Gateway, userID int64) {
	stats, err := e.history.ComputeStats(userID)
	if err != nil {
		e.text(gw, userID, msgEmptyStats)
		return
	}
	e.text(gw, userID, advice.RenderStats(stats))
}

func (e *Engine) exportCSV(gw gateway.Gateway, userID int64) {
	data, err := e.history.ExportCSV(userID)
	if err != nil {
		e.text(gw, userID, msgEmptyExport)
		return
	}
	doc := model.ChatDocument{
		Filename: history.ExportFilename,
		Caption:  exportCaption,
		Data:     data,
	}
	if err := gw.SendDocument(userID, doc); err != nil {
		config.GetLogger().Errorw("could not send export document", "user_id", userID, "error", err)
	}
}

// showTypeMenu stores the pending city and presents the weather-type menu.
func (e *Engine) showTypeMenu(gw gateway.Gateway, userID int64, sess *session, city string) {
	sess.city = city
	sess.state = StateChoosingWeatherType
	e.menu(gw, userID, "Город: "+city+"\nВыберите тип погоды:", typeMenu)
}

// finish ends a flow: the session resets and the main menu is shown again.
func (e *Engine) finish(gw gateway.Gateway, userID int64, sess *session) {
	sess.clear()
	e.menu(gw, userID, msgChooseAction, mainMenu)
}

func (e *Engine) session(userID int64) *session {
	e.mu.Lock()
	defer e.mu.Unlock()
	sess, ok := e.sessions[userID]
	if !ok {
		sess = &session{}
		e.sessions[userID] = sess
	}
	return sess
}

func (e *Engine) text(gw gateway.Gateway, userID int64, text string) {
	if err := gw.SendText(userID, text); err != nil {
		config.GetLogger().Errorw("could not send message", "user_id", userID, "error", err)
	}
}

func (e *Engine) menu(gw gateway.Gateway, userID int64, text string, rows [][]string) {
	if err := gw.SendMenu(userID, text, rows); err != nil {
		config.GetLogger().Errorw("could not send menu", "user_id", userID, "error", err)
	}
}
