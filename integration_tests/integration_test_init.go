package integrationtest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"
)

// mockOWMApi serves the two OpenWeatherMap endpoints the bot talks to.
// Only "Париж" and "Сочи" resolve; everything else is a 404.
func mockOWMApi() *httptest.Server {
	temps := map[string]float64{
		"Париж": 18.0,
		"Сочи":  22.5,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/weather", func(w http.ResponseWriter, r *http.Request) {
		city := r.URL.Query().Get("q")
		temp, ok := temps[city]
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"cod": "404", "message": "city not found"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"name": city,
			"main": map[string]interface{}{
				"temp":       temp,
				"feels_like": temp - 1,
				"humidity":   64,
			},
			"weather": []map[string]string{{"description": "ясно"}},
			"wind":    map[string]float64{"speed": 3.5},
		})
	})
	mux.HandleFunc("/forecast", func(w http.ResponseWriter, r *http.Request) {
		city := r.URL.Query().Get("q")
		temp, ok := temps[city]
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"cod": "404", "message": "city not found"})
			return
		}
		var list []map[string]interface{}
		base := time.Now()
		for day := 0; day < 6; day++ {
			for hour := 0; hour < 2; hour++ {
				ts := base.AddDate(0, 0, day).Add(time.Duration(hour*3) * time.Hour)
				list = append(list, map[string]interface{}{
					"dt":      ts.Unix(),
					"main":    map[string]interface{}{"temp": temp + float64(day)},
					"weather": []map[string]string{{"description": "ясно"}},
				})
			}
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"list": list})
	})
	return httptest.NewServer(mux)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
