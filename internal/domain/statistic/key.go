package statistic

import "fmt"

// The leaderboard snapshot lives under the current version of the guild. Invalidating bumps the
// version, so a snapshot loaded before the bump is written under a key nobody reads anymore.
func redisKeyLeaderboardVersion(guildID string) string {
	return fmt.Sprintf("%s:leaderboard:version", guildID)
}

func redisKeyLeaderboard(guildID, version string) string {
	return fmt.Sprintf("%s:leaderboard:%s", guildID, version)
}
