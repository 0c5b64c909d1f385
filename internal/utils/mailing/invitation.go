package mailing

import (
	"bytes"
	"html/template"
)

var invitationTemplate = template.Must(template.New("invitation").Parse(`<p>Hi!</p>
<p><strong>{{.Inviter}}</strong> wants to cook with you. Join the room <strong>{{.Room}}</strong> to add what's in your fridge and vote on what to make.</p>
<p><a href="{{.Link}}">Open {{.Room}}</a></p>`))

// InvitationBody renders the HTML body of a room invitation.
func InvitationBody(inviter string, room string, link string) string {
	var buf bytes.Buffer
	_ = invitationTemplate.Execute(&buf, struct {
		Inviter string
		Room    string
		Link    string
	}{inviter, room, link})
	return buf.String()
}
