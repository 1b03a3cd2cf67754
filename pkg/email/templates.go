package email

import (
	"bytes"
	htmltemplate "html/template"
	texttemplate "text/template"
)

// ContactEmailData holds the data for contact form emails
type ContactEmailData struct {
	SenderName  string
	SenderEmail string
	Subject     string
	Message     string
	OwnerName   string
}

const notificationText = `Name: {{.SenderName}}
Email: {{.SenderEmail}}
Subject: {{.Subject}}
Message: {{.Message}}
`

const notificationHTML = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>New Contact Form Submission</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #7c3aed; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; background: #f9f9f9; }
        .message-box { background: white; padding: 15px; border-left: 4px solid #7c3aed; white-space: pre-wrap; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h2>New Contact Form Submission</h2>
        </div>
        <div class="content">
            <p><strong>Name:</strong> {{.SenderName}}</p>
            <p><strong>Email:</strong> {{.SenderEmail}}</p>
            <p><strong>Subject:</strong> {{.Subject}}</p>
            <p><strong>Message:</strong></p>
            <div class="message-box">{{.Message}}</div>
        </div>
    </div>
</body>
</html>`

const acknowledgementText = `Hi {{.SenderName}},

Thank you for reaching out! I've received your message and will get back to you soon.

Best,
{{.OwnerName}}`

const acknowledgementHTML = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <p>Hi {{.SenderName}},</p>
    <p>Thank you for reaching out! I've received your message and will get back to you soon.</p>
    <p>Best,<br>{{.OwnerName}}</p>
</body>
</html>`

var (
	notificationTextTmpl    = texttemplate.Must(texttemplate.New("notification.txt").Parse(notificationText))
	notificationHTMLTmpl    = htmltemplate.Must(htmltemplate.New("notification.html").Parse(notificationHTML))
	acknowledgementTextTmpl = texttemplate.Must(texttemplate.New("acknowledgement.txt").Parse(acknowledgementText))
	acknowledgementHTMLTmpl = htmltemplate.Must(htmltemplate.New("acknowledgement.html").Parse(acknowledgementHTML))
)

// RenderNotification renders the owner notification bodies. User input is
// escaped in the HTML part.
func RenderNotification(data ContactEmailData) (text, html string, err error) {
	return render(data, notificationTextTmpl, notificationHTMLTmpl)
}

// RenderAcknowledgement renders the thank-you sent back to the visitor.
func RenderAcknowledgement(data ContactEmailData) (text, html string, err error) {
	return render(data, acknowledgementTextTmpl, acknowledgementHTMLTmpl)
}

func render(data ContactEmailData, textTmpl *texttemplate.Template, htmlTmpl *htmltemplate.Template) (string, string, error) {
	var textBuf, htmlBuf bytes.Buffer
	if err := textTmpl.Execute(&textBuf, data); err != nil {
		return "", "", err
	}
	if err := htmlTmpl.Execute(&htmlBuf, data); err != nil {
		return "", "", err
	}
	return textBuf.String(), htmlBuf.String(), nil
}
