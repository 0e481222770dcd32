package store

import "strconv"

// Key builders for the shared layout. Keys are a stable wire contract:
// string keys, ":" delimiter, never renamed.

// Users

// KeyUserName caches identity lookups for a user id
func KeyUserName(userID string) string { return "user:name:" + userID }

// KeyUserMod caches moderator status for a user id
func KeyUserMod(userID string) string { return "user:mod:" + userID }

// KeyUserAdmin caches admin status for a user id
func KeyUserAdmin(userID string) string { return "user:admin:" + userID }

// KeyUserInventory is the item -> count hash for a user
func KeyUserInventory(userID string) string { return "user:inventory:" + userID }

// KeyUserActiveBoosts is the activation -> expiry zset for a user
func KeyUserActiveBoosts(userID string) string { return "user:active_boosts:" + userID }

// KeyBoost is the hash for one boost activation
func KeyBoost(activationID string) string { return "boost:" + activationID }

// Words

// KeyWordsAll is the active word zset for a community, score = drawer score
func KeyWordsAll(sub string) string { return "words:all:" + sub }

// KeyWordsBanned is the banned word zset for a community
func KeyWordsBanned(sub string) string { return "words:banned:" + sub }

// KeyWordsUncertainty is the word -> uncertainty zset for a community
func KeyWordsUncertainty(sub string) string { return "words:uncertainty:" + sub }

// KeyWordsLastServed is the word -> last-served-unix hash for a community
func KeyWordsLastServed(sub string) string { return "words:lastServed:" + sub }

// KeyWordsTotal is the lifetime funnel counter hash for a community
func KeyWordsTotal(sub string) string { return "words:total:" + sub }

// KeyWordsHourly is the hourly funnel counter hash for a community
func KeyWordsHourly(sub string) string { return "words:hourly:" + sub }

// KeyWordsBacking is the word -> backing commentId hash for a community
func KeyWordsBacking(sub string) string { return "words:backing:" + sub }

// KeyWordsBackingByComment is the commentId -> word reverse index
func KeyWordsBackingByComment(sub string) string { return "words:backing:comment:" + sub }

// KeyCommunities is the global community index
func KeyCommunities() string { return "communities:all" }

// Slates

// KeySlate is the hash for one generated slate
func KeySlate(slateID string) string { return "slate:" + slateID }

// KeySlateConfig is the bandit config hash
func KeySlateConfig() string { return "slate:config" }

// KeySlateAggregatorLock guards the per-community score update loop
func KeySlateAggregatorLock(sub string) string { return "slate:aggregator:lock:" + sub }

// Tournaments

// KeyTournament is the hash with a tournament post's data
func KeyTournament(postID string) string { return "tournament:" + postID }

// KeyTournamentEntries is the commentId zset scored by Elo
func KeyTournamentEntries(postID string) string { return "tournament:entries:" + postID }

// KeyTournamentEntry is the metadata hash for one entry
func KeyTournamentEntry(commentID string) string { return "tournament:entry:" + commentID }

// KeyTournamentPlayers is the userId zset scored by participation
func KeyTournamentPlayers(postID string) string { return "tournament:players:" + postID }

// KeyTournamentHopper is the pending prompt zset, FIFO by insertion ts
func KeyTournamentHopper(sub string) string { return "tournament:hopper:" + sub }

// KeyTournamentsAll is the global tournaments index scored by createdAt
func KeyTournamentsAll() string { return "tournaments:all" }

// KeyTournamentSchedulerEnabled flags the hopper scheduler on for a community
func KeyTournamentSchedulerEnabled(sub string) string { return "tournament:scheduler:enabled:" + sub }

// KeyTournamentSchedulerLock guards one hopper tick per community
func KeyTournamentSchedulerLock(sub string) string { return "tournament:scheduler:lock:" + sub }

// KeyPayoutLedger is the dayIndex -> done hash for a tournament
func KeyPayoutLedger(postID string) string { return "tournament:payout:ledger:" + postID }

// KeyPayoutLock guards one payout per tournament and day
func KeyPayoutLock(postID string, day int) string {
	return "tournament:payout:lock:" + postID + ":" + strconv.Itoa(day)
}

// KeyEloLock serializes rating updates for a tournament
func KeyEloLock(postID string) string { return "tournament:payout:elo_lock:" + postID }

// Progression

// KeyScores is the global user score zset
func KeyScores() string { return "scores" }

// Rate limits

// KeyRateVote is the vote window counter for a user
func KeyRateVote(userID string) string { return "rate:vote:" + userID }

// KeyRateSubmit is the submit window counter for a user
func KeyRateSubmit(userID string) string { return "rate:submit:" + userID }

// Jobs

// KeyJobsScheduled is the due-time zset of pending jobs
func KeyJobsScheduled() string { return "jobs:scheduled" }

// KeyJob is the payload hash for one job
func KeyJob(jobID string) string { return "job:" + jobID }

// KeyJobLock claims one job delivery
func KeyJobLock(jobID string) string { return "job:lock:" + jobID }
