package socket

import (
	"log"
	"net"

	socketio "github.com/googollee/go-socket.io"
)

// NewServer builds the socket.io server. When redisAddr is non-empty the
// redis adapter is attached so user-targeted events reach whichever process
// holds that user's connection.
func NewServer(redisAddr string) *socketio.Server {
	server := socketio.NewServer(nil)

	if redisAddr != "" {
		host, port, err := net.SplitHostPort(redisAddr)
		if err != nil {
			log.Printf("⚠️ Invalid REDIS_ADDR %q, skipping socket adapter: %v", redisAddr, err)
		} else if _, err := server.Adapter(&socketio.RedisAdapterOptions{
			Host:   host,
			Port:   port,
			Prefix: "chirp",
		}); err != nil {
			log.Printf("⚠️ Redis socket adapter unavailable, staying single-process: %v", err)
		}
	}

	return server
}

// Bind registers connection lifecycle handlers against the hub.
func Bind(server *socketio.Server, hub *Hub) {
	server.OnConnect(Namespace, func(c socketio.Conn) error {
		c.SetContext("")
		c.Join(BroadcastRoom)
		log.Println("✅ Socket connected:", c.ID())
		return nil
	})

	// Clients identify themselves after connecting.
	server.OnEvent(Namespace, "userLogin", func(c socketio.Conn, userID string) {
		if userID == "" {
			log.Println("❌ Invalid userId in userLogin")
			return
		}
		c.SetContext(userID)
		// The private room keeps user targeting working across processes
		// when the redis adapter is attached.
		c.Join(userID)
		hub.Register(userID, c)
	})

	server.OnEvent(Namespace, "userLogout", func(c socketio.Conn, userID string) {
		if userID == "" {
			return
		}
		c.Leave(userID)
		c.SetContext("")
		hub.UnregisterSession(userID, c.ID())
	})

	server.OnEvent(Namespace, "join", func(c socketio.Conn, room string) {
		if room == "" {
			log.Println("❌ Invalid room in join request")
			return
		}
		log.Printf("👥 Conn %s joined room %s", c.ID(), room)
		c.Join(room)
	})

	server.OnError(Namespace, func(c socketio.Conn, err error) {
		log.Printf("❌ Socket error: %v", err)
	})

	server.OnDisconnect(Namespace, func(c socketio.Conn, reason string) {
		if userID, ok := c.Context().(string); ok && userID != "" {
			hub.UnregisterSession(userID, c.ID())
		}
		log.Println("❌ Socket disconnected:", c.ID(), reason)
	})
}
