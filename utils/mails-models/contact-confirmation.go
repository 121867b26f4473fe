package mailsmodels

import (
	"fmt"

	"github.com/LauraM111/jobtowners-backend-sub001/utils"
)

type ContactEmailData struct {
	FirstName string
	LastName  string
	Email     string
	Subject   string
	Message   string
}

func ContactConfirmation(contact ContactEmailData) {
	subject := "Subject: We received your message - JobTowners \r\n"
	mime := "MIME-version: 1.0;\r\nContent-Type: text/html; charset=\"UTF-8\";\r\n\r\n"
	body := fmt.Sprintf(`
	<div style="background-color: #1D4ED8; width: 100%%; min-height: 300px; padding: 30px; box-sizing:border-box">
		<table style="background-color: #ffffff; width: 100%%;  min-height: 300px;">
			<tbody>
				<tr>
					<td><h1 style="text-align:center">Thank you for your message!</h1></td>
				</tr>
				<tr>
					<td style="text-align:center; padding-bottom: 30px;">
						<p>Hello %s %s,</p>
						<p>We received your contact request about: "%s"</p>
						<p>We will get back to you as soon as possible.</p>
						<p>Your message:</p>
						<blockquote style="background-color: #f5f5f5; padding: 15px; border-left: 5px solid #1D4ED8;">
							%s
						</blockquote>
					</td>
				</tr>
			</tbody>
		</table>
	</div>
`, contact.FirstName, contact.LastName, contact.Subject, contact.Message)

	message := []byte(subject + mime + body)
	utils.SendMail(contact.Email, message)
}
