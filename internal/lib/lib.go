// Package lib holds integrations that sit outside the request path:
// background jobs (Asynq on Redis) and transactional email (Resend).
package lib
