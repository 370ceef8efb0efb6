package console

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestCommands_WireForm(t *testing.T) {
	srv := newFakeServer(t)
	c, _ := connect(t, srv.config())
	sc := srv.accept(t)

	tests := []struct {
		name string
		send func() error
		want string
	}{
		{"allow team change", func() error { return c.AllowTeamChange(true) }, "$allowteamchange on"},
		{"auto balance", func() error { return c.AutoBalance(false) }, "$autobalance off"},
		{"autosave disconnect", func() error { return c.AutoSaveDisconnect(true) }, "$autosavedisconnect on"},
		{"autosave level", func() error { return c.AutoSaveLevel(false) }, "$autosavelevel off"},
		{"balance", c.Balance, "$balance"},
		{"ban", func() error { return c.Ban(0) }, "$ban 0"},
		{"ban list", c.BanList, "$banlist"},
		{"change team", func() error { return c.ChangeTeam(31, "Blue") }, "$changeteam 31 Blue"},
		{"end level", c.EndLevel, "$endlevel"},
		{"kick", func() error { return c.Kick(3) }, "$kick 3"},
		{"kill message filter", func() error { return c.KillMsgFilter("simple") }, "$killmsgfilter simple"},
		{"net game info", c.NetGameInfo, "$netgameinfo"},
		{"player info", func() error { return c.PlayerInfo(7) }, "$playerinfo 7"},
		{"players", c.Players, "$players"},
		{"rehash", c.Rehash, "$rehash"},
		{"remote admin", func() error { return c.RemoteAdmin(true) }, "$remoteadmin on"},
		{"logout all", func() error { return c.RemoteAdminLogout(nil) }, "$remoteadminlogout"},
		{"logout first login", func() error { return c.RemoteAdminLogout(intPtr(0)) }, "$remoteadminlogout 0"},
		{"remote admin pass", func() error { return c.RemoteAdminPass("hunter2") }, "$remoteadminpass hunter2"},
		{"remove ban", func() error { return c.RemoveBan(2) }, "$removeban 2"},
		{"save stats", c.SaveStats, "$savestats"},
		{"scores", c.Scores, "$scores"},
		{"server hud names", func() error { return c.ServerHUDNames("team") }, "$serverhudnames team"},
		{"goal limit off", func() error { return c.SetGoalLimit(nil) }, "$setgoallimit 0"},
		{"goal limit", func() error { return c.SetGoalLimit(intPtr(20)) }, "$setgoallimit 20"},
		{"max players", func() error { return c.SetMaxPlayers(16) }, "$setmaxplayers 16"},
		{"pps", func() error { return c.SetPPS(12) }, "$setpps 12"},
		{"respawn time", func() error { return c.SetRespawnTime(30) }, "$setrespawntime 30"},
		{"team name", func() error { return c.SetTeamName(1, "Blue Team") }, "$setteamname 1 Blue Team"},
		{"time limit off", func() error { return c.SetTimeLimit(nil) }, "$settimelimit 0"},
		{"time limit", func() error { return c.SetTimeLimit(intPtr(15)) }, "$settimelimit 15"},
		{"stat messages", func() error { return c.StatMsgs(true) }, "$statmsgs on"},
		{"wait on", func() error { return c.Wait(true) }, "$wait on"},
		{"wait seconds", func() error { return c.WaitSeconds(2.5) }, "$wait 2.5"},
		{"wait whole seconds", func() error { return c.WaitSeconds(10) }, "$wait 10"},
		{"warp", func() error { return c.Warp(4) }, "$warp 4"},
		{"say", func() error { return c.Say("gg all") }, "say gg all"},
		{"quit", c.Quit, "quit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, tt.send())
			assert.Equal(t, tt.want+"\r\n", sc.readLine(t))
		})
	}
}

func TestCommands_Validation(t *testing.T) {
	// Validation happens before the connection is consulted.
	srv := newFakeServer(t)
	c, err := New(srv.config())
	require.NoError(t, err)

	tests := []struct {
		name  string
		send  func() error
		field string
	}{
		{"ban above 31", func() error { return c.Ban(32) }, "playerNum"},
		{"kick negative", func() error { return c.Kick(-1) }, "playerNum"},
		{"player info above 31", func() error { return c.PlayerInfo(40) }, "playerNum"},
		{"change team empty", func() error { return c.ChangeTeam(1, "") }, "team"},
		{"kill filter", func() error { return c.KillMsgFilter("Full") }, "killMsgFilter"},
		{"logout negative", func() error { return c.RemoteAdminLogout(intPtr(-2)) }, "loginID"},
		{"empty admin pass", func() error { return c.RemoteAdminPass("") }, "password"},
		{"remove ban negative", func() error { return c.RemoveBan(-1) }, "banNum"},
		{"hud names", func() error { return c.ServerHUDNames("all") }, "serverHudNames"},
		{"goal limit zero", func() error { return c.SetGoalLimit(intPtr(0)) }, "goalLimit"},
		{"max players one", func() error { return c.SetMaxPlayers(1) }, "maxPlayers"},
		{"max players 33", func() error { return c.SetMaxPlayers(33) }, "maxPlayers"},
		{"pps 21", func() error { return c.SetPPS(21) }, "pps"},
		{"respawn zero", func() error { return c.SetRespawnTime(0) }, "respawnTime"},
		{"team four", func() error { return c.SetTeamName(4, "Gold") }, "teamNum"},
		{"team name empty", func() error { return c.SetTeamName(0, "") }, "teamName"},
		{"time limit negative", func() error { return c.SetTimeLimit(intPtr(-5)) }, "timeLimit"},
		{"wait negative", func() error { return c.WaitSeconds(-0.5) }, "time"},
		{"warp zero", func() error { return c.Warp(0) }, "level"},
		{"say empty", func() error { return c.Say("") }, "text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.send()

			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "got %v", err)
			assert.Equal(t, tt.field, verr.Field)
		})
	}

	// valid arguments reach the connection check
	assert.ErrorIs(t, c.Kick(31), ErrNotConnected)
}
