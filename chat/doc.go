// Package chat is the Twitch IRC boundary of the bot.
//
// It owns the gempir IRC client, maps each inbound PRIVMSG into the
// dispatcher's Caller value (login name lowercased, moderator/broadcaster
// flags derived from tags and badges), and hands every message to the
// dispatcher on its own goroutine so a slow handler (e.g. an AI call) never
// stalls the read loop.
//
// Outbound sends go through Say, which waits on a token-bucket rate limiter
// sized for Twitch's per-30s message cap before queueing the message on the
// IRC client. Send failures are logged and counted, never retried.
//
// Credentials: the IRC client requires a bot username and a user OAuth token
// with chat:read/chat:edit scopes.
package chat
