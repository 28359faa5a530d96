package handlers_test

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"travel-journal-api/internal/app"
	"travel-journal-api/internal/config"
	"travel-journal-api/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const jwtSecret = "api-test-secret"

var (
	testApp *fiber.App
	testDB  *sql.DB
)

func TestMain(m *testing.M) {
	// Run the full HTTP stack against a shared in-memory SQLite database.
	os.Setenv("APP_ENV", "test")
	os.Setenv("DB_DRIVER", "sqlite3")
	os.Setenv("SQLITE_DB_PATH", "file:apitest?mode=memory&cache=shared")
	os.Setenv("JWT_SECRET", jwtSecret)

	cfg, err := config.LoadConfig(nil)
	if err != nil {
		log.Fatalf("failed to load test configuration: %v", err)
	}

	testApp, testDB, err = app.New(cfg, zap.NewNop())
	if err != nil {
		log.Fatalf("failed to assemble test application: %v", err)
	}

	code := m.Run()

	testDB.Close()
	os.Exit(code)
}

func doRequest(t *testing.T, method, path string, payload any, token string) *http.Response {
	t.Helper()
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("failed to marshal payload: %v", err)
		}
		body = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := testApp.Test(req, 5000)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("failed to decode JSON response: %v", err)
	}
	return out
}

func register(t *testing.T, username, password string) map[string]any {
	t.Helper()
	resp := doRequest(t, http.MethodPost, "/register", map[string]string{
		"username": username, "password": password,
	}, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("register %s: expected status 200, got %d", username, resp.StatusCode)
	}
	return decodeJSON(t, resp)
}

func login(t *testing.T, username, password string) string {
	t.Helper()
	resp := doRequest(t, http.MethodPost, "/login", map[string]string{
		"username": username, "password": password,
	}, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login %s: expected status 200, got %d", username, resp.StatusCode)
	}
	body := decodeJSON(t, resp)
	token, _ := body["jwt"].(string)
	if token == "" {
		t.Fatalf("login %s: expected non-empty jwt, got %v", username, body)
	}
	return token
}

func TestWelcome(t *testing.T) {
	resp := doRequest(t, http.MethodGet, "/", nil, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "html") {
		t.Errorf("expected HTML content type, got %q", ct)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "Welcome to my Travel Journal!") {
		t.Errorf("unexpected welcome body: %q", body)
	}
}

func TestRegisterLoginEntryFlow(t *testing.T) {
	// Register alice.
	regBody := register(t, "alice", "pw1")
	if regBody["success"] != true {
		t.Fatalf("expected success:true from register, got %v", regBody)
	}
	if regBody["message"] != "User successfully registered" {
		t.Errorf("unexpected register message: %v", regBody["message"])
	}
	data, _ := regBody["data"].(map[string]any)
	if data == nil || data["username"] != "alice" || data["password"] != "pw1" {
		t.Errorf("expected data to echo credentials, got %v", regBody["data"])
	}
	if regJWT, _ := regBody["jwt"].(string); regJWT == "" {
		t.Error("expected non-empty jwt from register")
	}

	// Login with the same credentials; the token claims must carry the
	// persisted id and username.
	token := login(t, "alice", "pw1")
	claims, err := utils.ValidateToken(token, jwtSecret)
	if err != nil {
		t.Fatalf("login token failed validation: %v", err)
	}
	var persistedID int64
	if err := testDB.QueryRow(`SELECT id FROM users WHERE username = 'alice'`).Scan(&persistedID); err != nil {
		t.Fatalf("failed to read persisted user id: %v", err)
	}
	if claims.ID != persistedID {
		t.Errorf("expected id claim %d, got %d", persistedID, claims.ID)
	}
	if claims.Username != "alice" {
		t.Errorf("expected username claim 'alice', got %q", claims.Username)
	}

	// Add an entry.
	entry := map[string]string{
		"newTitle":         "Trip",
		"newLocation":      "Paris",
		"newStartDate":     "2024-05-01",
		"newEndDate":       "2024-05-10",
		"newDescription":   "A week by the Seine",
		"newGoogleMapsUrl": "https://maps.google.com/?q=Paris",
		"newImgUrl":        "https://example.com/paris.jpg",
	}
	resp := doRequest(t, http.MethodPost, "/addEntry", entry, token)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("addEntry: expected status 200, got %d", resp.StatusCode)
	}
	addBody := decodeJSON(t, resp)
	if addBody["success"] != true || addBody["message"] != "Entry successfully added!" {
		t.Fatalf("unexpected addEntry response: %v", addBody)
	}

	// The entry round-trips through /home unmodified.
	resp = doRequest(t, http.MethodGet, "/home", nil, token)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("home: expected status 200, got %d", resp.StatusCode)
	}
	homeBody := decodeJSON(t, resp)
	if homeBody["success"] != true || homeBody["message"] != "Welcome to your data!" {
		t.Errorf("unexpected home envelope: %v", homeBody)
	}
	entries, _ := homeBody["data"].([]any)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry in home data, got %d", len(entries))
	}
	got, _ := entries[0].(map[string]any)
	for field, want := range map[string]string{
		"title":         "Trip",
		"location":      "Paris",
		"startDate":     "2024-05-01",
		"endDate":       "2024-05-10",
		"description":   "A week by the Seine",
		"googleMapsUrl": "https://maps.google.com/?q=Paris",
		"imgUrl":        "https://example.com/paris.jpg",
	} {
		if got[field] != want {
			t.Errorf("expected %s %q, got %v", field, want, got[field])
		}
	}
	if got["deletedFlag"] != float64(0) {
		t.Errorf("expected deletedFlag 0, got %v", got["deletedFlag"])
	}

	// The persisted row carries deletedFlag = 0 and the caller's id.
	var deletedFlag int
	var ownerID int64
	if err := testDB.QueryRow(`SELECT deletedFlag, userId FROM entries WHERE title = 'Trip'`).Scan(&deletedFlag, &ownerID); err != nil {
		t.Fatalf("failed to read persisted entry: %v", err)
	}
	if deletedFlag != 0 {
		t.Errorf("expected persisted deletedFlag 0, got %d", deletedFlag)
	}
	if ownerID != persistedID {
		t.Errorf("expected persisted userId %d, got %d", persistedID, ownerID)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	register(t, "bob", "rightpw")

	cases := []struct {
		name     string
		username string
		password string
	}{
		{"Unknown username", "nosuchuser", "whatever"},
		{"Wrong password", "bob", "wrongpw"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := doRequest(t, http.MethodPost, "/login", map[string]string{
				"username": tc.username, "password": tc.password,
			}, "")
			// The failure shape is asymmetric by contract: HTTP 200 with a
			// plain-text body, no JSON envelope and no token.
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("expected status 200, got %d", resp.StatusCode)
			}
			body, _ := io.ReadAll(resp.Body)
			if string(body) != "Username or password incorrect" {
				t.Errorf("unexpected failure body: %q", body)
			}
			if ct := resp.Header.Get("Content-Type"); strings.Contains(ct, "json") {
				t.Errorf("expected plain-text failure response, got %q", ct)
			}
		})
	}
}

func TestGuardOnProtectedRoutes(t *testing.T) {
	t.Run("addEntry without header returns 401", func(t *testing.T) {
		resp := doRequest(t, http.MethodPost, "/addEntry", map[string]string{"newTitle": "x", "newLocation": "y"}, "")
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("expected status 401, got %d", resp.StatusCode)
		}
		body, _ := io.ReadAll(resp.Body)
		if len(body) != 0 {
			t.Errorf("expected empty body, got %q", body)
		}
	})

	t.Run("addEntry with malformed token returns 403", func(t *testing.T) {
		resp := doRequest(t, http.MethodPost, "/addEntry", map[string]string{"newTitle": "x", "newLocation": "y"}, "not-a-token")
		if resp.StatusCode != http.StatusForbidden {
			t.Errorf("expected status 403, got %d", resp.StatusCode)
		}
		body, _ := io.ReadAll(resp.Body)
		if len(body) != 0 {
			t.Errorf("expected empty body, got %q", body)
		}
	})

	t.Run("home without header returns 401", func(t *testing.T) {
		resp := doRequest(t, http.MethodGet, "/home", nil, "")
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("expected status 401, got %d", resp.StatusCode)
		}
	})
}

func TestHomeReturnsOnlyOwnEntries(t *testing.T) {
	register(t, "diego", "pw-diego")
	register(t, "elena", "pw-elena")
	diegoToken := login(t, "diego", "pw-diego")
	elenaToken := login(t, "elena", "pw-elena")

	for token, title := range map[string]string{
		diegoToken: "Diego in Lisbon",
		elenaToken: "Elena in Kyoto",
	} {
		resp := doRequest(t, http.MethodPost, "/addEntry", map[string]string{
			"newTitle": title, "newLocation": "somewhere",
		}, token)
		body := decodeJSON(t, resp)
		if body["success"] != true {
			t.Fatalf("addEntry %q failed: %v", title, body)
		}
	}

	check := func(token, wantTitle, otherTitle string) {
		resp := doRequest(t, http.MethodGet, "/home", nil, token)
		body := decodeJSON(t, resp)
		entries, _ := body["data"].([]any)
		if len(entries) != 1 {
			t.Fatalf("expected exactly 1 entry, got %d", len(entries))
		}
		got, _ := entries[0].(map[string]any)
		if got["title"] != wantTitle {
			t.Errorf("expected title %q, got %v", wantTitle, got["title"])
		}
		if got["title"] == otherTitle {
			t.Errorf("home leaked another user's entry %q", otherTitle)
		}
	}
	check(diegoToken, "Diego in Lisbon", "Elena in Kyoto")
	check(elenaToken, "Elena in Kyoto", "Diego in Lisbon")
}

func TestUsersListsEveryRow(t *testing.T) {
	register(t, "frida", "pw-frida")
	register(t, "gustav", "pw-gustav")

	resp := doRequest(t, http.MethodGet, "/users", nil, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}
	body := decodeJSON(t, resp)
	users, _ := body["users"].([]any)
	if users == nil {
		t.Fatalf("expected users array, got %v", body)
	}

	found := map[string]bool{}
	for _, u := range users {
		row, _ := u.(map[string]any)
		name, _ := row["username"].(string)
		found[name] = true
		// Rows are serialized verbatim, stored password included.
		if name == "frida" && row["password"] != "pw-frida" {
			t.Errorf("expected verbatim password for frida, got %v", row["password"])
		}
	}
	if !found["frida"] || !found["gustav"] {
		t.Errorf("expected just-registered users in listing, got %v", found)
	}
}

func TestRegisterTokenEmbedsGeneratedID(t *testing.T) {
	regBody := register(t, "hana", "pw-hana")
	regJWT, _ := regBody["jwt"].(string)
	if regJWT == "" {
		t.Fatal("expected non-empty jwt from register")
	}

	claims := &utils.RegistrationClaims{}
	parsed, err := jwt.ParseWithClaims(regJWT, claims, func(t *jwt.Token) (any, error) {
		return []byte(jwtSecret), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("registration token failed to parse: %v", err)
	}

	var persistedID int64
	if err := testDB.QueryRow(`SELECT id FROM users WHERE username = 'hana'`).Scan(&persistedID); err != nil {
		t.Fatalf("failed to read persisted user id: %v", err)
	}
	if claims.UserID != persistedID {
		t.Errorf("expected userId claim %d, got %d", persistedID, claims.UserID)
	}
	if claims.Username != "hana" || claims.Password != "pw-hana" {
		t.Errorf("expected body fields echoed into claims, got %+v", claims)
	}
}

func TestRegisterTokenRejectedOnProtectedRoutes(t *testing.T) {
	// The jwt issued by /register carries userId/password claims, not the
	// id claim login tokens carry. Were the guard to accept it, every
	// register-token holder would act as user 0 and read each other's
	// entries. Both protected routes must answer 403 instead.
	ivanJWT, _ := register(t, "ivan", "pw-ivan")["jwt"].(string)
	judyJWT, _ := register(t, "judy", "pw-judy")["jwt"].(string)
	if ivanJWT == "" || judyJWT == "" {
		t.Fatal("expected non-empty jwt from register")
	}

	resp := doRequest(t, http.MethodPost, "/addEntry", map[string]string{
		"newTitle": "Ivan's secret", "newLocation": "nowhere",
	}, ivanJWT)
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("addEntry with register token: expected status 403, got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if len(body) != 0 {
		t.Errorf("expected empty body, got %q", body)
	}

	resp = doRequest(t, http.MethodGet, "/home", nil, judyJWT)
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("home with register token: expected status 403, got %d", resp.StatusCode)
	}

	// Nothing was persisted into a shared id-0 bucket.
	var count int
	if err := testDB.QueryRow(`SELECT COUNT(*) FROM entries WHERE userId = 0`).Scan(&count); err != nil {
		t.Fatalf("failed to count userId 0 entries: %v", err)
	}
	if count != 0 {
		t.Errorf("expected no entries under userId 0, got %d", count)
	}
}

func TestAddEntryAcceptsSparseBody(t *testing.T) {
	// Every entry field is free-form and optional; an empty body persists
	// a row of empty strings.
	register(t, "kasia", "pw-kasia")
	token := login(t, "kasia", "pw-kasia")

	resp := doRequest(t, http.MethodPost, "/addEntry", map[string]string{}, token)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}
	body := decodeJSON(t, resp)
	if body["success"] != true {
		t.Fatalf("expected success:true for sparse body, got %v", body)
	}

	resp = doRequest(t, http.MethodGet, "/home", nil, token)
	homeBody := decodeJSON(t, resp)
	entries, _ := homeBody["data"].([]any)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	got, _ := entries[0].(map[string]any)
	if got["title"] != "" || got["location"] != "" {
		t.Errorf("expected empty title and location, got %v / %v", got["title"], got["location"])
	}
}

func TestRegisterRequiresPresence(t *testing.T) {
	resp := doRequest(t, http.MethodPost, "/register", map[string]string{"username": "nopassword"}, "")
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected status 400 for missing password, got %d", resp.StatusCode)
	}
}
