package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"
	"os/signal"

	"github.com/gorilla/websocket"
)

var (
	addr     = flag.String("addr", "localhost:8080", "http service address")
	room     = flag.String("room", "study-hall", "room to join")
	identity = flag.String("identity", "", "user identity (prompted when empty)")
)

type Event struct {
	Type         string `json:"type"`
	Status       string `json:"status,omitempty"`
	Room         string `json:"room,omitempty"`
	User         string `json:"user,omitempty"`
	Content      string `json:"content,omitempty"`
	Timestamp    string `json:"timestamp,omitempty"`
	Participants int    `json:"participants,omitempty"`
}

func main() {
	flag.Parse()

	user := *identity
	if user == "" {
		user = promptIdentity()
	}

	conn := connectWebSocket(*room, user)
	defer conn.Close()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	done := make(chan struct{})
	go readEvents(conn, done)

	fmt.Println("Write Messages (Press Enter to Send, /ping to ping):")
	writeEvents(conn, user, interrupt, done)
}

func promptIdentity() string {
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print("Enter your identity: ")
	scanner.Scan()
	return scanner.Text()
}

func connectWebSocket(room, identity string) *websocket.Conn {
	u := url.URL{Scheme: "ws", Host: *addr, Path: fmt.Sprintf("/ws/%s/%s", room, identity)}
	log.Printf("Connecting to %s", u.String())

	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		log.Fatalf("Failed to connect to WebSocket server: %v", err)
	}
	log.Println("Connected to WebSocket server.")
	return conn
}

func readEvents(conn *websocket.Conn, done chan struct{}) {
	defer close(done)
	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			log.Printf("Error reading message: %v", err)
			return
		}

		var ev Event
		if err := json.Unmarshal(message, &ev); err != nil {
			log.Printf("Error parsing message: %v", err)
			continue
		}

		switch ev.Type {
		case "message", "transcription", "agent_response":
			fmt.Printf("\n[%s] %s: %s\n", ev.Timestamp, ev.User, ev.Content)
		case "user_joined":
			fmt.Printf("\n* %s joined %s (%d participants)\n", ev.User, ev.Room, ev.Participants)
		case "user_left":
			fmt.Printf("\n* %s left %s (%d participants)\n", ev.User, ev.Room, ev.Participants)
		case "connection":
			fmt.Printf("\n* %s to %s\n", ev.Status, ev.Room)
		case "pong":
			fmt.Println("\n* pong")
		default:
			fmt.Printf("\n* %s event\n", ev.Type)
		}
	}
}

func writeEvents(conn *websocket.Conn, identity string, interrupt chan os.Signal, done chan struct{}) {
	scanner := bufio.NewScanner(os.Stdin)
	for {
		select {
		case <-done:
			return
		case <-interrupt:
			log.Println("Interrupt received, closing connection...")
			err := conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			if err != nil {
				log.Printf("Error during close: %v", err)
			}
			return
		default:
			if scanner.Scan() {
				content := scanner.Text()
				if content == "" {
					continue
				}

				ev := Event{Type: "message", User: identity, Content: content}
				if content == "/ping" {
					ev = Event{Type: "ping"}
				}

				if err := conn.WriteJSON(ev); err != nil {
					log.Printf("Error sending message: %v", err)
					return
				}

				fmt.Printf("[Sent] %s\n", content)
			}
		}
	}
}
