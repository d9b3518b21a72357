// Package advice renders normalized weather data into the bot's fixed
// Russian message templates. All functions are pure.
package advice

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/fakhrymubarak/weather-chatbot/internal/model"
)

// RenderCurrent formats a current-conditions reading with a clothing
// advice clause and, when the description mentions precipitation, a rain
// or snow clause. The rain check wins over the snow check.
func RenderCurrent(r *model.WeatherReading) string {
	advice := []string{clothingAdvice(r.Temp)}
	switch {
	case strings.Contains(r.Desc, "дождь") || strings.Contains(r.Desc, "ливень"):
		advice = append(advice, "Возьмите зонт и наденьте непромокаемую обувь.")
	case strings.Contains(r.Desc, "снег"):
		advice = append(advice, "Наденьте непромокаемую обувь и тёплую одежду.")
	}

	return fmt.Sprintf(
		"🌤 <b>%s</b>\n"+
			"Температура: %.1f°C (ощущается как %.1f°C)\n"+
			"Описание: %s\n"+
			"Влажность: %d%%, Ветер: %g м/с\n\n"+
			"💡 <i>%s</i>",
		r.City, r.Temp, r.FeelsLike, capitalize(r.Desc), r.Humidity, r.WindSpeed,
		strings.Join(advice, " "),
	)
}

// RenderYesterday formats an archived entry the same way as a live
// reading. Feels-like, humidity and wind were not archived and render as
// the temperature itself and zeros.
func RenderYesterday(city string, ev model.WeatherEvent) string {
	reading := &model.WeatherReading{
		City:      city,
		Temp:      ev.Temp,
		FeelsLike: ev.Temp,
		Desc:      ev.Desc,
	}
	return fmt.Sprintf("📅 <b>Вчерашняя погода — %s</b>\n%s", city, RenderCurrent(reading))
}

// RenderForecast formats a multi-day forecast, one line per day.
func RenderForecast(city string, days []model.ForecastDay) string {
	lines := []string{fmt.Sprintf("📅 <b>Прогноз на 5 дней — %s</b>", city)}
	for _, d := range days {
		date := d.Date
		if t, err := time.Parse("2006-01-02", d.Date); err == nil {
			date = t.Format("02.01")
		}
		lines = append(lines, fmt.Sprintf("• %s: %.1f°C, %s", date, d.Temp, capitalize(d.Desc)))
	}
	lines = append(lines, "\n💡 Одевайтесь по погоде!")
	return strings.Join(lines, "\n")
}

// RenderComparison formats two readings and their signed temperature
// difference (first minus second).
func RenderComparison(cityA string, a *model.WeatherReading, cityB string, b *model.WeatherReading) string {
	return fmt.Sprintf(
		"🌡 <b>%s</b>: %.1f°C (%s)\n"+
			"🌡 <b>%s</b>: %.1f°C (%s)\n"+
			"Разница: <b>%+.1f°C</b>",
		cityA, a.Temp, a.Desc, cityB, b.Temp, b.Desc, a.Temp-b.Temp,
	)
}

// RenderStats formats the request-history summary.
func RenderStats(s model.Stats) string {
	return fmt.Sprintf(
		"📊 Статистика:\n"+
			"Всего запросов: %d\n"+
			"Самый частый город: %s (%d раз)\n"+
			"Первый: %s\n"+
			"Последний: %s",
		s.TotalRequests, s.TopCity, s.TopCityCount, s.FirstDate, s.LastDate,
	)
}

func clothingAdvice(t float64) string {
	switch {
	case t >= 25:
		return "Наденьте лёгкую одежду."
	case t >= 15:
		return "Тёплая одежда не требуется, но возьмите лёгкую куртку."
	case t >= 5:
		return "Рекомендуется куртка или пальто."
	case t >= -5:
		return "Обязательно наденьте тёплую куртку, шапку и перчатки."
	default:
		return "Очень холодно! Теплое пальто, шапка, шарф, перчатки — обязательно."
	}
}

// capitalize upper-cases the first rune and lower-cases the rest.
func capitalize(s string) string {
	runes := []rune(strings.ToLower(s))
	if len(runes) == 0 {
		return s
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
