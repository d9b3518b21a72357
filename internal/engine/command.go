package engine

import "strings"

// Command is the symbolic meaning of an inbound text. Raw menu labels are
// classified into commands before they reach the transition logic, so the
// display strings stay out of the state machine.
type Command int

const (
	CmdText Command = iota // free text with no menu meaning
	CmdStart
	CmdUnknownSlash
	CmdWeather
	CmdSetCity
	CmdCompare
	CmdStats
	CmdExport
	CmdBack
	CmdNow
	CmdYesterday
	CmdFiveDay
	CmdDefaultCity
	CmdNewCity
)

const (
	btnWeather     = "🌤 Погода"
	btnCompare     = "🔁 Сравнить погоду"
	btnStats       = "📊 Статистика"
	btnExport      = "📤 Экспорт CSV"
	btnSetCity     = "⚙️ Установить город"
	btnBack        = "← Назад"
	btnNow         = "Сейчас"
	btnYesterday   = "Вчера"
	btnFiveDay     = "На 5 дней"
	btnDefaultCity = "Город по умолчанию"
	btnNewCity     = "Новый город"
)

var (
	mainMenu = [][]string{
		{btnWeather, btnCompare},
		{btnStats, btnExport},
		{btnSetCity},
	}
	sourceMenu = [][]string{
		{btnDefaultCity, btnNewCity},
		{btnBack},
	}
	typeMenu = [][]string{
		{btnNow, btnYesterday, btnFiveDay},
		{btnBack},
	}
)

// classify maps raw text to a Command. Slash-prefixed input is always a
// command: /start or unknown, never a city name or menu choice.
func classify(text string) Command {
	if strings.HasPrefix(text, "/") {
		if text == "/start" {
			return CmdStart
		}
		return CmdUnknownSlash
	}
	switch text {
	case btnWeather:
		return CmdWeather
	case btnSetCity:
		return CmdSetCity
	case btnCompare:
		return CmdCompare
	case btnStats:
		return CmdStats
	case btnExport:
		return CmdExport
	case btnBack:
		return CmdBack
	case btnNow:
		return CmdNow
	case btnYesterday:
		return CmdYesterday
	case btnFiveDay:
		return CmdFiveDay
	case btnDefaultCity:
		return CmdDefaultCity
	case btnNewCity:
		return CmdNewCity
	default:
		return CmdText
	}
}
