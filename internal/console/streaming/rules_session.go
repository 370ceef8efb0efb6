package streaming

import "strings"

// ignoredLines are banner, help and progress lines the server prints around
// command output. They are recognized and dropped.
var ignoredLines = []string{
	`NetGame Information`,
	`PNum Name`,
	`Packet Loss: N/A`,
	`Mission over\. {2}Looping back to first level in mission file\.`,
	`Opening level .*\.\.\.`,
	`Downloading mission data\.\.\..* level [1-9][0-9]* [0-9]+ Percent Complete`,
	`Analyzing data\.\.\..* level [1-9][0-9]* [0-9]+ Percent Complete`,
	`\x08+`,
	`Input Command List:`,
	`Prefix a '\$' before the commands listed below. {2}To get more detailed help`,
	`about a command, type '\$help <command>'`,

	// $help command listing, two per row
	`allowteamchange +autobalance`,
	`autosavedisconnect +autosavelevel`,
	`balance +ban`,
	`banlist +changeteam`,
	`endlevel +help`,
	`hudnames +kick`,
	`killmsgfilter +netgameinfo`,
	`observer +piggyback`,
	`playerinfo +players`,
	`rehash +remote`,
	`remoteadmin +remoteadminlogout`,
	`remoteadminpass +removeban`,
	`savestats +scores`,
	`serverhudnames +setgoallimit`,
	`setmaxplayers +setpps`,
	`setrespawntime +setteamname`,
	`settimelimit +statmsgs`,
	`team +wait`,
	`warp +`,
	// last $help row; identical to a quit echo, which is dropped with it
	`quit`,

	// $help <command> pages
	`\[(?:Dedicated )?(?:Server|Client) Only\]`,
	`allowteamchange:`,
	`Turns off/on allowing clients to change their team\.`,
	`Usage: "\$allowteamchange <off/on>"`,
	`autobalance:`,
	`Turns off/on allowing the automatic team placement of new players by the server\.`,
	`Usage: "\$autobalance <off/on>"`,
	`autosavedisconnect:`,
	`Enables/Disables the automatic saving of the game stats if you disconnect from the server\.`,
	`Usage: "\$autosavedisconnect <on/off>"`,
	`autosavelevel:`,
	`Enables/Disables the automatic saving of the game stats when the level ends\.`,
	`Usage: "\$autosavelevel <on/off>"`,
	`balance:`,
	`Automatically balances the teams, based on senority\.`,
	`Usage: "\$balance"`,
	`\*Balancing Teams`,
	`\*Ending the level`,
	`ban:`,
	`Bans a player from the game\.`,
	`Usage: "\$ban <pnum>"`,
	`Banning .*`,
	`banlist:`,
	`Lists the players banned from the game along with their ban number, which can be used to remove the ban\.`,
	`Usage: "\$banlist"`,
	`changeteam:`,
	`Forces a player to a team\.`,
	`Usage: "\$changeteam <pnum> <team_name>"`,
	`\*Attempting to change .* to .* team`,
	`endlevel:`,
	`Ends the level\.`,
	`Usage: "\$endlevel"`,
	`help:`,
	`Displays help information for the input commands.`,
	`Usage: "\$help \[command\]"`,
	`hudnames:`,
	`Sets your personal level for the HUD name filter\.`,
	`Usage: "\$hudnames <full/team/none>"`,
	`NOTE: You can only set your HUD Callsign level up to the level that the server is\. {2}So if the server is only allowing up to teammates, you won't be able to set to full`,
	`\*Personal HUD Name Level: .*`,
	`kick:`,
	`Kicks a player from the game\.`,
	`Usage: "\$kick <pnum>"`,
	`killmsgfilter:`,
	`Sets the kill message filter, for what style of messages you want\.`,
	`Usage: "\$killmsgfilter <full/simple/none>"`,
	`netgameinfo:?`,
	`observer:`,
	`If you pass specify 'on', it puts you into observer mode, else it will return you back to normal mode\.`,
	`Usage: "\$observer <on/off>"`,
	`piggyback:`,
	`Puts you into Piggyback Observer mode\."\$piggyback <pnum>"`,
	`playerinfo:`,
	`Displays information about a player\.`,
	`Usage: "\$playerinfo <pnum>"`,
	`\*Getting Playerinfo for .*`,
	`players:`,
	`Displays a list of the players in the game, with their player numbers\.`,
	`Usage: "\$players"`,
	`rehash:`,
	`Rehashes the hosts\.allow and hosts\.deny files\. {2}First it flushes the old, and reloads them\.`,
	`Usages: "\$rehash"`,
	`remote:`,
	`handles a remote admin command`,
	`Usage: "\$remote <command> <option parms> <\.\.\.>"`,
	`remoteadmin:`,
	`handles enable/disable remote administration`,
	`Usage: "\$remoteadmin <on/off>"{1,2}`,
	`remoteadminlogout:`,
	`handles seeing who is logged in, and allows the server to log them out`,
	`If no parameter is given it lists all the players logged in\.`,
	`To log out a player give the login-id as a parameter`,
	`Usage: "\$remoteadminlogout \[login-id\]"`,
	`remoteadminpass:`,
	`handles setting/changing the remote administration password`,
	`Usage: "\$remoteadminpass <password>"`,
	`removeban:`,
	`Removes a ban from a player, given the number associated with them from \$banlist\.`,
	`Usage: "\$removeban <player>"`,
	`\*Ban Removed`,
	`\*Couldn't remove ban`,
	`savestats:`,
	`Saves the game stats to file immediatly\.`,
	`Usage: "\$savestats"`,
	`scores:`,
	`Displays the scores or stats of the game\.`,
	`Usage: "\$scores"`,
	`Pilot +(?:Points|Score) +K(?:ills)? +D(?:eaths)? +S(?:uicides)? +Ping *`,
	`Pilot +Points BlKillDeaSuicidPing *`,
	`serverhudnames:`,
	`Sets the highest HUD name filter permitted for the clients\.`,
	`Usage: "\$serverhudnames <full/team/none>"`,
	`setgoallimit:`,
	`Changes the goal limit for the level\.`,
	`Usage: "\$setgoallimit <points>"`,
	`setmaxplayers:`,
	`Sets the maximum number of players allowed in the game\.`,
	`Usage: "\$setmaxplayers <count>"`,
	`setpps:`,
	`Changes the Packets Per Second \(PPS\) threshold of the game`,
	`Usage: "\$setpps <pps>"`,
	`setrespawntime:`,
	`Changes the respawn time of the powerups in the level\.`,
	`Usage: "\$setrespawntime <seconds>"`,
	`setteamname:`,
	`Changes the name of a team\.`,
	`Usage: "\$setteamname <team_num> <new_team_name>"`,
	`settimelimit:`,
	`Changes the time limit for the level\.`,
	`Usage: "\$settimelimit <minutes>"`,
	`statmsgs:`,
	`Enables/Disables random statistical messages\.`,
	`Usage: "\$statmsgs <on/off>"`,
	`team:`,
	`Change teams for yourself\.`,
	`Usage: "\$team <team_name>"`,
	`wait:`,
	`handles a request to make all clients wait/or stop waiting\. {2}If a time is giving, the server will wait that long each level until it lets clients to play\.`,
	`Usage: "\$wait <on/off or time-in-seconds>"`,
	`warp:`,
	`Changes the current level to another level in the mission\.`,
	`Usage: "\$warp <level>"`,
}

const ipv4 = `((?:[0-9]+\.){3}[0-9]+)`

func ignoredRules() []Rule {
	return []Rule{
		newRule("ignored", strings.Join(ignoredLines, "|"), signal(kindIgnored)),
		newRule("password prompt", `Enter Password:`, signal(kindPasswordPrompt)),
	}
}

func sessionRules() []Rule {
	return []Rule{
		newRule("unrecognized command", `Unrecognized command or bad format\.`,
			invalid("Unrecognized command or bad format.")),
		newRule("command not available", `Command Not Available To Dedicated Server`,
			invalid("Command not available to dedicated server.")),
		newRule("command not found", `Command not found`,
			invalid("Command not found.")),

		newRule("logged in", `Remote host ([0-9.]+) logged in\.`, func(m []string) Event {
			return event(EventLoggedIn, IPData{IP: m[0]})
		}),
		newRule("command echo", `((?:\$|say ).*)`, func(m []string) Event {
			return event(EventCommand, CommandData{Command: m[0]})
		}),
		newRule("say", `\*(.*) (?:says|sagt|dit|types): (.*)`, func(m []string) Event {
			return event(EventSay, SayData{Player: m[0], Text: m[1]})
		}),
		newRule("guidebot", `\*\x01\xad\xad\x01GB:\x01\x01\xad\x01 (.*)`, func(m []string) Event {
			return event(EventGuideBot, TextData{Text: m[0]})
		}),

		newRule("remote connection", `New connection \(`+ipv4+`\)`, func(m []string) Event {
			return event(EventRemoteConnection, IPData{IP: m[0]})
		}),
		newRule("invalid password", `Invalid login password from `+ipv4+`\.`, func(m []string) Event {
			return event(EventInvalidPassword, IPData{IP: m[0]})
		}),
		newRule("remote connection closed", `Remote host `+ipv4+` closed the connection\.`, func(m []string) Event {
			return event(EventRemoteConnectionClosed, IPData{IP: m[0]})
		}),
		newRule("remote command", `\[([0-9.]+)\] (.*)`, func(m []string) Event {
			return event(EventRemoteCommand, RemoteCommandData{IP: m[0], Command: m[1]})
		}),

		newRule("remote admin logged in", `\*==(.*) is remote administrating==`, playerOnly(EventRemoteAdminLoggedIn)),
		newRule("remote admin command", `\*==(.*) executed "(.*)"`, func(m []string) Event {
			return event(EventRemoteAdminCommand, RemoteAdminCommandData{Player: m[0], Command: m[1]})
		}),

		newRule("joined game", `\*(.*) has joined (?:the )?(?:Anarchy|Hoard|Hyper Anarchy|CTF|Co-op)!?`, func(m []string) Event {
			return event(EventJoined, JoinedData{Player: m[0]})
		}),
		newRule("joined team", `\*(.*) [hH]as [jJ]oined [tT]he (.*) Team`, func(m []string) Event {
			return event(EventJoined, JoinedData{Player: m[0], Team: m[1]})
		}),
		newRule("left", `\*(.*) has left the game`, playerOnly(EventLeft)),
		newRule("disconnected", `\*(.*) disconnected!`, playerOnly(EventDisconnected)),
		newRule("observing", `\*(.*) starts observing\.`, playerOnly(EventObserving)),
		newRule("unobserving", `\*(.*) stops observing\.`, playerOnly(EventUnobserving)),

		newRule("shutdown", `Shutting down server.`, signal(EventShutdown)),
	}
}
