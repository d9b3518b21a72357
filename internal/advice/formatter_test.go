package advice

import (
	"strings"
	"testing"

	"github.com/fakhrymubarak/weather-chatbot/internal/model"
)

func reading(temp float64, desc string) *model.WeatherReading {
	return &model.WeatherReading{
		City:      "Москва",
		Temp:      temp,
		FeelsLike: temp - 2,
		Desc:      desc,
		Humidity:  70,
		WindSpeed: 3.5,
	}
}

func TestRenderCurrent_AdviceBoundaries(t *testing.T) {
	tests := []struct {
		name   string
		temp   float64
		advice string
	}{
		{"exactly 25 is light clothing", 25.0, "Наденьте лёгкую одежду."},
		{"exactly 15 is light jacket", 15.0, "возьмите лёгкую куртку"},
		{"exactly 5 is jacket or coat", 5.0, "Рекомендуется куртка или пальто."},
		{"exactly -5 is warm coat", -5.0, "тёплую куртку, шапку и перчатки"},
		{"below -5 is severe cold", -5.1, "Очень холодно!"},
		{"well above 25", 31.2, "Наденьте лёгкую одежду."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RenderCurrent(reading(tt.temp, "ясно"))
			if !strings.Contains(got, tt.advice) {
				t.Errorf("expected advice %q in message:\n%s", tt.advice, got)
			}
		})
	}
}

func TestRenderCurrent_PrecipitationClauses(t *testing.T) {
	tests := []struct {
		name        string
		desc        string
		wantClause  string
		notExpected string
	}{
		{
			name:        "rain adds umbrella clause",
			desc:        "небольшой дождь",
			wantClause:  "Возьмите зонт",
			notExpected: "Наденьте непромокаемую обувь и тёплую одежду.",
		},
		{
			name:       "downpour adds umbrella clause",
			desc:       "ливень",
			wantClause: "Возьмите зонт",
		},
		{
			name:        "snow adds snow clause",
			desc:        "снег",
			wantClause:  "Наденьте непромокаемую обувь и тёплую одежду.",
			notExpected: "Возьмите зонт",
		},
		{
			name:        "rain with snow keeps only the rain clause",
			desc:        "дождь со снегом",
			wantClause:  "Возьмите зонт",
			notExpected: "Наденьте непромокаемую обувь и тёплую одежду.",
		},
		{
			name:        "clear sky adds neither",
			desc:        "ясно",
			wantClause:  "",
			notExpected: "Возьмите зонт",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RenderCurrent(reading(10, tt.desc))
			if tt.wantClause != "" && !strings.Contains(got, tt.wantClause) {
				t.Errorf("expected clause %q in message:\n%s", tt.wantClause, got)
			}
			if tt.notExpected != "" && strings.Contains(got, tt.notExpected) {
				t.Errorf("did not expect clause %q in message:\n%s", tt.notExpected, got)
			}
		})
	}
}

func TestRenderCurrent_Formatting(t *testing.T) {
	got := RenderCurrent(reading(21.456, "переменная облачность"))
	for _, want := range []string{
		"🌤 <b>Москва</b>",
		"Температура: 21.5°C (ощущается как 19.5°C)",
		"Описание: Переменная облачность",
		"Влажность: 70%, Ветер: 3.5 м/с",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("expected %q in message:\n%s", want, got)
		}
	}
}

func TestRenderYesterday(t *testing.T) {
	ev := model.WeatherEvent{City: "Сочи", Temp: 18.0, Desc: "ясно", Timestamp: "2025-03-01T12:00:00Z"}
	got := RenderYesterday("Сочи", ev)
	if !strings.HasPrefix(got, "📅 <b>Вчерашняя погода — Сочи</b>\n") {
		t.Errorf("missing archive header:\n%s", got)
	}
	if !strings.Contains(got, "Температура: 18.0°C (ощущается как 18.0°C)") {
		t.Errorf("feels-like should fall back to temperature:\n%s", got)
	}
	if !strings.Contains(got, "Влажность: 0%, Ветер: 0 м/с") {
		t.Errorf("humidity and wind should render as zeros:\n%s", got)
	}
}

func TestRenderForecast(t *testing.T) {
	days := []model.ForecastDay{
		{Date: "2025-03-02", Temp: 4.25, Desc: "пасмурно"},
		{Date: "2025-03-03", Temp: -1.5, Desc: "снег"},
	}
	got := RenderForecast("Казань", days)

	lines := strings.Split(got, "\n")
	if lines[0] != "📅 <b>Прогноз на 5 дней — Казань</b>" {
		t.Errorf("unexpected header: %q", lines[0])
	}
	if lines[1] != "• 02.03: 4.2°C, Пасмурно" {
		t.Errorf("unexpected forecast line: %q", lines[1])
	}
	if lines[2] != "• 03.03: -1.5°C, Снег" {
		t.Errorf("unexpected forecast line: %q", lines[2])
	}
	if !strings.HasSuffix(got, "\n\n💡 Одевайтесь по погоде!") {
		t.Errorf("missing closing advice line:\n%s", got)
	}
}

func TestRenderComparison(t *testing.T) {
	a := &model.WeatherReading{Temp: 20.0, Desc: "ясно"}
	b := &model.WeatherReading{Temp: 15.5, Desc: "дождь"}

	got := RenderComparison("Москва", a, "Сочи", b)
	if !strings.Contains(got, "🌡 <b>Москва</b>: 20.0°C (ясно)") {
		t.Errorf("missing first summary line:\n%s", got)
	}
	if !strings.Contains(got, "🌡 <b>Сочи</b>: 15.5°C (дождь)") {
		t.Errorf("missing second summary line:\n%s", got)
	}
	if !strings.Contains(got, "Разница: <b>+4.5°C</b>") {
		t.Errorf("missing signed difference:\n%s", got)
	}

	got = RenderComparison("Сочи", b, "Москва", a)
	if !strings.Contains(got, "Разница: <b>-4.5°C</b>") {
		t.Errorf("negative difference should keep its sign:\n%s", got)
	}
}

func TestRenderStats(t *testing.T) {
	got := RenderStats(model.Stats{
		TotalRequests: 7,
		TopCity:       "Москва",
		TopCityCount:  4,
		FirstDate:     "2025-02-01",
		LastDate:      "2025-03-01",
	})
	for _, want := range []string{
		"Всего запросов: 7",
		"Самый частый город: Москва (4 раз)",
		"Первый: 2025-02-01",
		"Последний: 2025-03-01",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("expected %q in stats message:\n%s", want, got)
		}
	}
}
