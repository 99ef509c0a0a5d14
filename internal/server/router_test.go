package server_test

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/acc-switch/accswitch/internal/appstate"
	"github.com/acc-switch/accswitch/internal/platforms"
	"github.com/acc-switch/accswitch/internal/server"
	"github.com/acc-switch/accswitch/internal/settings/settingstest"
)

const (
	testUserDataDirectory = "userdata"
	eventReadTimeout      = 2 * time.Second
)

type routerFixture struct {
	engine     *gin.Engine
	registry   *platforms.Registry
	state      *appstate.AppState
	fileSystem *settingstest.MemoryFileSystem
}

func newRouterFixture(t *testing.T, staticDirectory string) routerFixture {
	t.Helper()
	fileSystem := settingstest.NewMemoryFileSystem()
	fileSystem.Seed(filepath.Join(testUserDataDirectory, "LoginCache", platforms.EpicName, "StoredAccounts.json"),
		`[{"Id":"epic-1","Name":"First"},{"Id":"epic-2","Name":"Second"}]`)

	registry := platforms.NewRegistry(platforms.Config{UserDataDirectory: testUserDataDirectory, FileSystem: fileSystem})
	if err := registry.LoadAll(context.Background()); err != nil {
		t.Fatalf("LoadAll returned error: %v", err)
	}
	state := appstate.New(appstate.Config{UserDataDirectory: testUserDataDirectory, FileSystem: fileSystem})

	engine, err := server.NewRouter(server.RouterConfig{Platforms: registry, State: state, StaticDirectory: staticDirectory})
	if err != nil {
		t.Fatalf("NewRouter returned error: %v", err)
	}
	return routerFixture{engine: engine, registry: registry, state: state, fileSystem: fileSystem}
}

func (fixture routerFixture) perform(method string, path string, body string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		request.Header.Set("Content-Type", "application/json")
	}
	recorder := httptest.NewRecorder()
	fixture.engine.ServeHTTP(recorder, request)
	return recorder
}

func decodeBody[T any](t *testing.T, recorder *httptest.ResponseRecorder) T {
	t.Helper()
	var decoded T
	if err := json.Unmarshal(recorder.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("decode %q: %v", recorder.Body.String(), err)
	}
	return decoded
}

func TestNewRouterRequiresDependencies(t *testing.T) {
	state := appstate.New(appstate.Config{UserDataDirectory: testUserDataDirectory, FileSystem: settingstest.NewMemoryFileSystem()})
	if _, err := server.NewRouter(server.RouterConfig{State: state}); !errors.Is(err, server.ErrMissingPlatforms) {
		t.Fatalf("expected ErrMissingPlatforms, got %v", err)
	}
	registry := platforms.NewRegistry(platforms.Config{UserDataDirectory: testUserDataDirectory, FileSystem: settingstest.NewMemoryFileSystem()})
	if _, err := server.NewRouter(server.RouterConfig{Platforms: registry}); !errors.Is(err, server.ErrMissingState) {
		t.Fatalf("expected ErrMissingState, got %v", err)
	}
}

func TestRouterStatusCodes(t *testing.T) {
	fixture := newRouterFixture(t, "")

	testCases := []struct {
		name           string
		method         string
		path           string
		body           string
		expectedStatus int
	}{
		{name: "health", method: http.MethodGet, path: "/healthz", expectedStatus: http.StatusOK},
		{name: "platform list", method: http.MethodGet, path: "/api/platforms", expectedStatus: http.StatusOK},
		{name: "settings", method: http.MethodGet, path: "/api/platforms/steam/settings", expectedStatus: http.StatusOK},
		{name: "unknown platform", method: http.MethodGet, path: "/api/platforms/gog/settings", expectedStatus: http.StatusNotFound},
		{name: "invalid patch", method: http.MethodPatch, path: "/api/platforms/Steam/settings", body: `{"Admin":`, expectedStatus: http.StatusBadRequest},
		{name: "forget flag missing", method: http.MethodPut, path: "/api/platforms/Steam/settings/forget-enabled", body: `{}`, expectedStatus: http.StatusBadRequest},
		{name: "negative tray count", method: http.MethodPut, path: "/api/platforms/Steam/settings/tray-accounts", body: `{"count":-1}`, expectedStatus: http.StatusBadRequest},
		{name: "forget unknown account", method: http.MethodPost, path: "/api/platforms/Epic/accounts/nobody/forget", expectedStatus: http.StatusNotFound},
		{name: "restore active account", method: http.MethodPost, path: "/api/platforms/Epic/accounts/epic-1/restore", expectedStatus: http.StatusNotFound},
		{name: "navigation body", method: http.MethodPost, path: "/api/navigation", body: `[`, expectedStatus: http.StatusBadRequest},
		{name: "unknown toast", method: http.MethodDelete, path: "/api/toasts/missing", expectedStatus: http.StatusNotFound},
		{name: "unknown api route", method: http.MethodGet, path: "/api/unknown", expectedStatus: http.StatusNotFound},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			recorder := fixture.perform(testCase.method, testCase.path, testCase.body)
			if recorder.Code != testCase.expectedStatus {
				t.Fatalf("expected status %d, got %d: %s", testCase.expectedStatus, recorder.Code, recorder.Body.String())
			}
		})
	}
}

func TestUnknownPlatformResponse(t *testing.T) {
	fixture := newRouterFixture(t, "")
	recorder := fixture.perform(http.MethodGet, "/api/platforms/gog/accounts", "")

	body := decodeBody[map[string]string](t, recorder)
	if body["error"] != "unknown platform" {
		t.Fatalf("expected unknown platform error, got %v", body)
	}
}

func TestPlatformListOrder(t *testing.T) {
	fixture := newRouterFixture(t, "")
	names := decodeBody[[]string](t, fixture.perform(http.MethodGet, "/api/platforms", ""))
	if strings.Join(names, ",") != strings.Join(platforms.Names(), ",") {
		t.Fatalf("expected %v, got %v", platforms.Names(), names)
	}
}

func TestMergeSettingsPersists(t *testing.T) {
	fixture := newRouterFixture(t, "")
	recorder := fixture.perform(http.MethodPatch, "/api/platforms/Steam/settings", `{"Admin":true,"TrayAccNumber":5}`)
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", recorder.Code, recorder.Body.String())
	}

	document := fixture.registry.Steam.Document()
	if !document.Admin || document.TrayAccNumber != 5 || !document.ShowVac {
		t.Fatalf("unexpected merged settings %+v", document)
	}
	if fixture.fileSystem.Writes(platforms.SettingsPath(testUserDataDirectory, platforms.SteamName)) != 1 {
		t.Fatalf("expected the merge to be persisted once")
	}

	recorder = fixture.perform(http.MethodPost, "/api/platforms/Steam/settings/reset", "")
	if recorder.Code != http.StatusOK || fixture.registry.Steam.Document().Admin {
		t.Fatalf("expected reset to restore defaults, got %d", recorder.Code)
	}
}

func TestSettingFlagsThroughRoutes(t *testing.T) {
	fixture := newRouterFixture(t, "")
	settingsPath := platforms.SettingsPath(testUserDataDirectory, platforms.BattleNetName)

	recorder := fixture.perform(http.MethodPut, "/api/platforms/BattleNet/settings/forget-enabled", `{"enabled":false}`)
	if recorder.Code != http.StatusOK || fixture.fileSystem.Writes(settingsPath) != 0 {
		t.Fatalf("expected unchanged flag to skip the write, got %d with %d writes", recorder.Code, fixture.fileSystem.Writes(settingsPath))
	}
	recorder = fixture.perform(http.MethodPut, "/api/platforms/BattleNet/settings/tray-accounts", `{"count":7}`)
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}
	settingsBody := decodeBody[map[string]any](t, recorder)
	if settingsBody["BattleNet_TrayAccNumber"] != float64(7) {
		t.Fatalf("expected tray number in response, got %v", settingsBody["BattleNet_TrayAccNumber"])
	}
}

func TestForgetAndRestoreAccount(t *testing.T) {
	fixture := newRouterFixture(t, "")

	recorder := fixture.perform(http.MethodPost, "/api/platforms/Epic/accounts/epic-1/forget", "")
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", recorder.Code, recorder.Body.String())
	}
	lists := decodeBody[struct {
		Active  []map[string]string `json:"active"`
		Ignored []map[string]string `json:"ignored"`
	}](t, recorder)
	if len(lists.Active) != 1 || len(lists.Ignored) != 1 || lists.Ignored[0]["Id"] != "epic-1" {
		t.Fatalf("unexpected lists %+v", lists)
	}

	snapshot := fixture.state.Snapshot()
	if len(snapshot.Toasts) != 1 || snapshot.Toasts[0].Kind != appstate.ToastSuccess {
		t.Fatalf("expected a success toast, got %+v", snapshot.Toasts)
	}
	if snapshot.Discord.Platform != platforms.EpicName {
		t.Fatalf("expected presence to refresh for Epic, got %+v", snapshot.Discord)
	}

	recorder = fixture.perform(http.MethodPost, "/api/platforms/Epic/accounts/epic-1/forget", "")
	if recorder.Code != http.StatusNotFound {
		t.Fatalf("expected second forget to be 404, got %d", recorder.Code)
	}
	recorder = fixture.perform(http.MethodPost, "/api/platforms/Epic/accounts/epic-1/restore", "")
	if recorder.Code != http.StatusOK || len(fixture.registry.Epic.ActiveAccounts()) != 2 {
		t.Fatalf("expected restore to succeed, got %d", recorder.Code)
	}

	toastID := fixture.state.Snapshot().Toasts[0].ID
	recorder = fixture.perform(http.MethodDelete, "/api/toasts/"+toastID, "")
	if recorder.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", recorder.Code)
	}
}

func TestNavigationRemembersPlatform(t *testing.T) {
	fixture := newRouterFixture(t, "")

	recorder := fixture.perform(http.MethodPost, "/api/navigation", `{"path":"/steam/settings"}`)
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}
	navigation := decodeBody[appstate.NavigationSnapshot](t, recorder)
	if navigation.Current != "/steam/settings" || !navigation.CanGoBack {
		t.Fatalf("unexpected navigation %+v", navigation)
	}
	if fixture.state.Window().Settings().LastPlatform != platforms.SteamName {
		t.Fatalf("expected last platform to be Steam")
	}

	recorder = fixture.perform(http.MethodPost, "/api/navigation/back", "")
	navigation = decodeBody[appstate.NavigationSnapshot](t, recorder)
	if navigation.Current != "/" || navigation.CanGoBack {
		t.Fatalf("expected back to return home, got %+v", navigation)
	}
}

func TestStaticFilesServedForUnmatchedPaths(t *testing.T) {
	staticDirectory := t.TempDir()
	if err := os.MkdirAll(filepath.Join(staticDirectory, "css"), 0o755); err != nil {
		t.Fatalf("create directory: %v", err)
	}
	if err := os.WriteFile(filepath.Join(staticDirectory, "index.html"), []byte("<html>switcher</html>"), 0o644); err != nil {
		t.Fatalf("write index: %v", err)
	}
	if err := os.WriteFile(filepath.Join(staticDirectory, "css", "base.css"), []byte("body{}"), 0o644); err != nil {
		t.Fatalf("write stylesheet: %v", err)
	}
	fixture := newRouterFixture(t, staticDirectory)

	recorder := fixture.perform(http.MethodGet, "/", "")
	if recorder.Code != http.StatusOK || !strings.Contains(recorder.Body.String(), "switcher") {
		t.Fatalf("expected index page, got %d: %s", recorder.Code, recorder.Body.String())
	}
	recorder = fixture.perform(http.MethodGet, "/css/base.css", "")
	if recorder.Code != http.StatusOK || recorder.Body.String() != "body{}" {
		t.Fatalf("expected stylesheet, got %d: %s", recorder.Code, recorder.Body.String())
	}
	recorder = fixture.perform(http.MethodGet, "/missing.js", "")
	if recorder.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for a missing file, got %d", recorder.Code)
	}
}

func TestEventStreamPublishesStateChanges(t *testing.T) {
	fixture := newRouterFixture(t, "")
	testServer := httptest.NewServer(fixture.engine)
	defer testServer.Close()

	requestContext, cancel := context.WithCancel(context.Background())
	defer cancel()
	request, err := http.NewRequestWithContext(requestContext, http.MethodGet, testServer.URL+"/api/events", nil)
	if err != nil {
		t.Fatalf("create request: %v", err)
	}
	response, err := testServer.Client().Do(request)
	if err != nil {
		t.Fatalf("open event stream: %v", err)
	}
	defer response.Body.Close()

	if contentType := response.Header.Get("Content-Type"); !strings.HasPrefix(contentType, "text/event-stream") {
		t.Fatalf("expected event stream content type, got %q", contentType)
	}

	events := make(chan appstate.Snapshot, 4)
	go readStateEvents(response, events)

	initial := waitForEvent(t, events)
	if len(initial.Toasts) != 0 {
		t.Fatalf("expected no toasts in the initial event")
	}

	fixture.state.Toasts().Show(appstate.ToastInfo, "Hello", "")
	updated := waitForEvent(t, events)
	if len(updated.Toasts) != 1 || updated.Toasts[0].Title != "Hello" {
		t.Fatalf("expected toast in the next event, got %+v", updated.Toasts)
	}
}

func readStateEvents(response *http.Response, events chan<- appstate.Snapshot) {
	defer close(events)
	scanner := bufio.NewScanner(response.Body)
	eventName := ""
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "event:"):
			eventName = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:") && eventName == "state":
			var snapshot appstate.Snapshot
			if err := json.Unmarshal([]byte(strings.TrimSpace(strings.TrimPrefix(line, "data:"))), &snapshot); err == nil {
				events <- snapshot
			}
		}
	}
}

func waitForEvent(t *testing.T, events <-chan appstate.Snapshot) appstate.Snapshot {
	t.Helper()
	select {
	case snapshot, open := <-events:
		if !open {
			t.Fatalf("event stream closed")
		}
		return snapshot
	case <-time.After(eventReadTimeout):
		t.Fatalf("timed out waiting for a state event")
	}
	return appstate.Snapshot{}
}

func TestMergeSettingsReplacesMapsAndValidates(t *testing.T) {
	fixture := newRouterFixture(t, "")

	recorder := fixture.perform(http.MethodPut, "/api/platforms/Steam/accounts/1/name", `{"name":"Main"}`)
	if recorder.Code != http.StatusOK || fixture.registry.Steam.Document().CustomAccountNames["1"] != "Main" {
		t.Fatalf("expected the account name to be set, got %d: %s", recorder.Code, recorder.Body.String())
	}

	recorder = fixture.perform(http.MethodPatch, "/api/platforms/Steam/settings", `{"CustomAccountNames":{}}`)
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", recorder.Code, recorder.Body.String())
	}
	if names := fixture.registry.Steam.Document().CustomAccountNames; len(names) != 0 {
		t.Fatalf("expected an empty map to clear the names, got %v", names)
	}

	writesBefore := fixture.fileSystem.TotalWrites()
	recorder = fixture.perform(http.MethodPatch, "/api/platforms/Steam/settings", `{"TrayAccNumber":-7}`)
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for a negative tray count, got %d", recorder.Code)
	}
	if fixture.registry.Steam.Document().TrayAccNumber != 3 || fixture.fileSystem.TotalWrites() != writesBefore {
		t.Fatalf("expected the rejected patch to leave the settings alone")
	}
}

func TestPlatformSpecificSettingRoutes(t *testing.T) {
	fixture := newRouterFixture(t, "")

	testCases := []struct {
		name           string
		path           string
		body           string
		expectedStatus int
	}{
		{name: "steam closing method", path: "/api/platforms/Steam/settings/closing-method", body: `{"method":"Combined"}`, expectedStatus: http.StatusOK},
		{name: "blank closing method", path: "/api/platforms/Origin/settings/closing-method", body: `{"method":" "}`, expectedStatus: http.StatusBadRequest},
		{name: "riot has no closing method", path: "/api/platforms/Riot/settings/closing-method", body: `{"method":"TaskKill"}`, expectedStatus: http.StatusNotFound},
		{name: "discord starting method", path: "/api/platforms/Discord/settings/starting-method", body: `{"method":"Hidden"}`, expectedStatus: http.StatusOK},
		{name: "missing starting method", path: "/api/platforms/Steam/settings/starting-method", body: `{}`, expectedStatus: http.StatusBadRequest},
		{name: "steam shortcuts", path: "/api/platforms/Steam/settings/shortcuts", body: `{"shortcuts":{"0":"game.url"}}`, expectedStatus: http.StatusOK},
		{name: "epic has no shortcuts", path: "/api/platforms/Epic/settings/shortcuts", body: `{"shortcuts":{}}`, expectedStatus: http.StatusNotFound},
		{name: "overwatch mode", path: "/api/platforms/BattleNet/settings/overwatch-mode", body: `{"enabled":false}`, expectedStatus: http.StatusOK},
		{name: "collect info", path: "/api/platforms/Discord/settings/collect-info", body: `{"enabled":false}`, expectedStatus: http.StatusOK},
		{name: "override state", path: "/api/platforms/Ubisoft/settings/override-state", body: `{"state":0}`, expectedStatus: http.StatusOK},
		{name: "epic account name", path: "/api/platforms/Epic/accounts/epic-1/name", body: `{"name":"Main"}`, expectedStatus: http.StatusOK},
		{name: "riot has no account names", path: "/api/platforms/Riot/accounts/r/name", body: `{"name":"Main"}`, expectedStatus: http.StatusNotFound},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			recorder := fixture.perform(http.MethodPut, testCase.path, testCase.body)
			if recorder.Code != testCase.expectedStatus {
				t.Fatalf("expected status %d, got %d: %s", testCase.expectedStatus, recorder.Code, recorder.Body.String())
			}
		})
	}

	steam := fixture.registry.Steam.Document()
	if steam.ClosingMethod != "Combined" || steam.Shortcuts[0] != "game.url" {
		t.Fatalf("unexpected Steam settings %+v", steam)
	}
	if fixture.registry.Discord.Document().StartingMethod != "Hidden" || fixture.registry.Discord.Document().CollectInfo {
		t.Fatalf("unexpected Discord settings %+v", fixture.registry.Discord.Document())
	}
	if fixture.registry.BattleNet.Document().OverwatchMode || fixture.registry.Ubisoft.Document().OverrideState != 0 {
		t.Fatalf("expected Battle.net and Ubisoft settings to be updated")
	}
	if fixture.registry.Epic.Document().CustomAccountNames["epic-1"] != "Main" {
		t.Fatalf("expected the Epic account name to be stored")
	}
}

func TestClientPaths(t *testing.T) {
	fixture := newRouterFixture(t, "")

	steam := decodeBody[map[string]string](t, fixture.perform(http.MethodGet, "/api/platforms/Steam/paths", ""))
	if steam["exe"] != `C:\Program Files (x86)\Steam\Steam.exe` || steam["loginUsersVdf"] != `C:\Program Files (x86)\Steam\config\loginusers.vdf` {
		t.Fatalf("unexpected Steam paths %v", steam)
	}
	riot := decodeBody[map[string]string](t, fixture.perform(http.MethodGet, "/api/platforms/Riot/paths", ""))
	if _, found := riot["loginUsersVdf"]; found || riot["exe"] == "" {
		t.Fatalf("unexpected Riot paths %v", riot)
	}
}

func TestImportAccountsRoute(t *testing.T) {
	fixture := newRouterFixture(t, "")

	recorder := fixture.perform(http.MethodPut, "/api/platforms/Riot/accounts", `[{"Id":"riot-1","Name":"One"}]`)
	if recorder.Code != http.StatusOK || len(fixture.registry.Riot.ActiveAccounts()) != 1 {
		t.Fatalf("expected the accounts to be imported, got %d: %s", recorder.Code, recorder.Body.String())
	}
	recorder = fixture.perform(http.MethodPut, "/api/platforms/Riot/accounts", `{"Id":"riot-2"}`)
	if recorder.Code != http.StatusBadRequest || len(fixture.registry.Riot.ActiveAccounts()) != 1 {
		t.Fatalf("expected a malformed import to be rejected, got %d", recorder.Code)
	}
}

func TestWindowSettingRoutes(t *testing.T) {
	fixture := newRouterFixture(t, "")

	testCases := []struct {
		name           string
		path           string
		body           string
		expectedStatus int
	}{
		{name: "language", path: "/api/window/language", body: `{"language":"ar-SA"}`, expectedStatus: http.StatusOK},
		{name: "blank language", path: "/api/window/language", body: `{"language":""}`, expectedStatus: http.StatusBadRequest},
		{name: "streamer mode", path: "/api/window/streamer-mode", body: `{"enabled":false}`, expectedStatus: http.StatusOK},
		{name: "size", path: "/api/window/size", body: `{"width":1024,"height":600}`, expectedStatus: http.StatusOK},
		{name: "empty size", path: "/api/window/size", body: `{"width":0,"height":600}`, expectedStatus: http.StatusBadRequest},
		{name: "missing height", path: "/api/window/size", body: `{"width":1024}`, expectedStatus: http.StatusBadRequest},
		{name: "minimize on switch", path: "/api/window/minimize-on-switch", body: `{"enabled":true}`, expectedStatus: http.StatusOK},
		{name: "discord rpc", path: "/api/window/discord-rpc", body: `{"enabled":false}`, expectedStatus: http.StatusOK},
		{name: "discord rpc body", path: "/api/window/discord-rpc", body: `{"shareTotalSwitches":false}`, expectedStatus: http.StatusBadRequest},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			recorder := fixture.perform(http.MethodPut, testCase.path, testCase.body)
			if recorder.Code != testCase.expectedStatus {
				t.Fatalf("expected status %d, got %d: %s", testCase.expectedStatus, recorder.Code, recorder.Body.String())
			}
		})
	}

	window := decodeBody[appstate.WindowSettings](t, fixture.perform(http.MethodGet, "/api/window", ""))
	if window.Language != "ar-SA" || !window.Rtl || window.StreamerModeEnabled || !window.MinimizeOnSwitch {
		t.Fatalf("unexpected window settings %+v", window)
	}
	if window.WindowSize != (platforms.Size{X: 1024, Y: 600}) {
		t.Fatalf("unexpected window size %+v", window.WindowSize)
	}
	if window.DiscordRpcEnabled || !window.DiscordRpcShareTotalSwitches {
		t.Fatalf("expected only the presence switch to change, got %+v", window)
	}
	if fixture.state.Discord().Snapshot().Enabled {
		t.Fatalf("expected the presence to follow the window settings")
	}
}

func TestSettingSaveFailureIsReported(t *testing.T) {
	fixture := newRouterFixture(t, "")
	settingsPath := platforms.SettingsPath(testUserDataDirectory, platforms.SteamName)

	fixture.fileSystem.FailWrites(1, errors.New("disk full"))
	recorder := fixture.perform(http.MethodPut, "/api/platforms/Steam/settings/forget-enabled", `{"enabled":true}`)
	if recorder.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", recorder.Code)
	}
	toasts := fixture.state.Snapshot().Toasts
	if len(toasts) != 1 || toasts[0].Kind != appstate.ToastError {
		t.Fatalf("expected an error toast, got %+v", toasts)
	}

	recorder = fixture.perform(http.MethodPut, "/api/platforms/Steam/settings/forget-enabled", `{"enabled":true}`)
	if recorder.Code != http.StatusOK || fixture.fileSystem.Writes(settingsPath) != 1 {
		t.Fatalf("expected the retry to be saved, got %d with %d writes", recorder.Code, fixture.fileSystem.Writes(settingsPath))
	}
}
