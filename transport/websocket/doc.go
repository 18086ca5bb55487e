// Package websocket streams webhook activity to browsers.
//
// A central Hub owns every connection. Clients subscribe to one topic, a
// webhook id, or to AllTopics for everything. Publish queues an event and
// the hub's Run loop fans it out; a client whose buffer is full is dropped
// rather than stalling the others.
//
// Outgoing messages are JSON:
//
//	{"webhookId":"wh-1","event":"data_received","data":{...},"timestamp":"..."}
//
// Usage:
//
//	hub := websocket.NewHub(logger)
//	go hub.Run(ctx)
//	router.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
//		hub.ServeWS(w, r, r.URL.Query().Get("webhook"))
//	})
package websocket
