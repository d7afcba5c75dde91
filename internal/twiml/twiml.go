// Package twiml renders the voice-response documents the telephony gateway
// consumes. Documents must be well-formed XML with a UTF-8 declaration or the
// gateway drops the call.
package twiml

import (
	"encoding/xml"
	"fmt"
	"log"
)

const sayVoice = "alice"

type Say struct {
	XMLName xml.Name `xml:"Say"`
	Voice   string   `xml:"voice,attr"`
	Text    string   `xml:",chardata"`
}

type Pause struct {
	XMLName xml.Name `xml:"Pause"`
	Length  int      `xml:"length,attr"`
}

type Message struct {
	XMLName xml.Name `xml:"Message"`
	Text    string   `xml:",chardata"`
}

type voiceResponse struct {
	XMLName xml.Name `xml:"Response"`
	Intro   Say
	Wait    Pause
	Detail  Say
}

type messageResponse struct {
	XMLName xml.Name `xml:"Response"`
	Message Message
}

type fallbackResponse struct {
	XMLName xml.Name `xml:"Response"`
	Say     Say
}

// VoiceAlert builds the spoken emergency announcement: two segments separated
// by a pause, each repeating the location so a distracted listener catches it.
func VoiceAlert(location, timeText string) (string, error) {
	doc := voiceResponse{
		Intro: Say{
			Voice: sayVoice,
			Text: fmt.Sprintf("Emergency alert activated. The person at %s is in an emergency situation. "+
				"Please send help immediately. This is an automated emergency call.", location),
		},
		Wait: Pause{Length: 2},
		Detail: Say{
			Voice: sayVoice,
			Text:  fmt.Sprintf("Emergency location: %s. Time: %s. Please respond as soon as possible.", location, timeText),
		},
	}
	return render(doc)
}

// MessageReply builds the SMS auto-reply document for the inbound-SMS webhook.
func MessageReply(text string) (string, error) {
	return render(messageResponse{Message: Message{Text: text}})
}

// VoiceFallback is the minimal document returned when anything upstream
// failed. The caller must always hear something, so this never errors.
func VoiceFallback() string {
	doc, err := render(fallbackResponse{Say: Say{
		Voice: sayVoice,
		Text:  "Emergency system activated. Help is on the way.",
	}})
	if err != nil {
		log.Println("twiml fallback render failed:", err)
		return xml.Header + "<Response></Response>"
	}
	return doc
}

// MessageFallback is the reply document used when SMS handling failed.
func MessageFallback() string {
	doc, err := MessageReply("System temporarily unavailable. For emergencies, call emergency services directly.")
	if err != nil {
		log.Println("twiml fallback render failed:", err)
		return xml.Header + "<Response></Response>"
	}
	return doc
}

func render(doc any) (string, error) {
	body, err := xml.MarshalIndent(doc, "", "    ")
	if err != nil {
		return "", fmt.Errorf("marshal twiml: %w", err)
	}
	return xml.Header + string(body), nil
}
