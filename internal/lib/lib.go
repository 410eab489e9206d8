// Package lib groups integrations that sit outside the request path:
// background jobs on Redis (asynq) and outbound email (Resend).
package lib
