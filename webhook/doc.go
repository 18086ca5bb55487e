// Package webhook implements the standalone webhook demo server.
//
// The server keeps webhooks in memory and exposes:
//
//   - POST /create-webhook - Create a webhook
//   - GET /webhooks - List webhooks with their full URLs
//   - POST /webhook/{id} - Deliver a JSON payload
//   - GET /ws?webhook={id} - Watch deliveries over WebSocket (optional)
//   - GET / - HTML management interface
//
// The Enhanced flavour also forwards each payload to the webhook's
// splineWebhookUrl and reports the reply as splineResponse.
package webhook
