package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Malek-bh/agrical-api/internal/config"
	dbpkg "github.com/Malek-bh/agrical-api/internal/db"
	"github.com/Malek-bh/agrical-api/internal/dto"
	"github.com/Malek-bh/agrical-api/internal/httperr"
	"github.com/Malek-bh/agrical-api/internal/routes"
)

// --------- Fakes for the external integrations ---------

type fakeWeather struct {
	lastLat, lastLon float64
	err              error
}

func (f *fakeWeather) Fetch(_ context.Context, lat, lon float64) (*dto.WeatherDTO, error) {
	f.lastLat, f.lastLon = lat, lon
	if f.err != nil {
		return nil, f.err
	}
	return &dto.WeatherDTO{
		Latitude:      lat,
		Longitude:     lon,
		Time:          []string{"2026-03-01T00:00"},
		Temperature2m: []float64{18.5},
	}, nil
}

type fakeCommodity struct{}

func (f *fakeCommodity) Fetch(_ context.Context, symbol, currency string) (*dto.CommodityPriceDTO, error) {
	if symbol == "UNOBTAINIUM" {
		return nil, httperr.NewNotFound("commodity_not_found")
	}
	return &dto.CommodityPriceDTO{
		Commodity: symbol,
		Currency:  currency,
		Price:     123.45,
		Unit:      "per bushel",
		Source:    "test",
	}, nil
}

type fakeClassifier struct {
	label    string
	gotBytes int
}

func (f *fakeClassifier) Predict(_ context.Context, imageData io.Reader) (string, error) {
	data, err := io.ReadAll(imageData)
	if err != nil {
		return "", err
	}
	f.gotBytes = len(data)
	return f.label, nil
}

// --------- Test environment ---------

type testEnv struct {
	t      *testing.T
	router *gin.Engine
	db     *gorm.DB

	weather    *fakeWeather
	classifier *fakeClassifier
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on&_busy_timeout=5000", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, dbpkg.Migrate(db))

	log := logrus.New()
	log.SetOutput(io.Discard)

	weather := &fakeWeather{}
	classifier := &fakeClassifier{label: "Tomato___Early_blight"}

	r := gin.New()
	routes.RegisterRoutes(r, routes.Deps{
		DB: db,
		Config: &config.Config{
			SecretKey: "test-secret",
			TokenTTL:  30 * time.Minute,
		},
		Log:        log,
		Cache:      nil,
		Weather:    weather,
		Commodity:  &fakeCommodity{},
		Classifier: classifier,
		Images:     nil,
		EmailValidator: func(email string) bool {
			// e2e stand-in for the DNS check
			return email != "user@bad.invalid"
		},
	})

	return &testEnv{t: t, router: r, db: db, weather: weather, classifier: classifier}
}

// --------- Request helpers ---------

func (e *testEnv) do(method, path, token string, body any) *httptest.ResponseRecorder {
	e.t.Helper()

	var buf io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(e.t, err)
		buf = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) register(username, email, password string, isAdmin bool) {
	e.t.Helper()

	w := e.do(http.MethodPost, "/register", "", gin.H{
		"username": username,
		"email":    email,
		"password": password,
		"is_admin": isAdmin,
	})
	require.Equal(e.t, http.StatusCreated, w.Code, w.Body.String())
}

func (e *testEnv) login(username, password string) string {
	e.t.Helper()

	w := e.do(http.MethodPost, "/login", "", gin.H{
		"username": username,
		"password": password,
	})
	require.Equal(e.t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(e.t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(e.t, resp.AccessToken)
	return resp.AccessToken
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}
