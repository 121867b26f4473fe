package mailsmodels

import (
	"fmt"

	"github.com/LauraM111/jobtowners-backend-sub001/utils"
)

type ApplicationReceivedData struct {
	FirstName string
	Email     string
	JobTitle  string
	Company   string
}

// ApplicationReceived confirms to a candidate that their application was
// submitted.
func ApplicationReceived(data ApplicationReceivedData) {
	subject := "Subject: Application received - JobTowners \r\n"
	mime := "MIME-version: 1.0;\r\nContent-Type: text/html; charset=\"UTF-8\";\r\n\r\n"
	body := fmt.Sprintf(`
	<div style="background-color: #1D4ED8; width: 100%%; min-height: 300px; padding: 30px; box-sizing:border-box">
		<table style="background-color: #ffffff; width: 100%%;  min-height: 300px;">
			<tbody>
				<tr>
					<td><h1 style="text-align:center">Application received!</h1></td>
				</tr>
				<tr>
					<td style="text-align:center; padding-bottom: 30px;">
						<p>Hello %s,</p>
						<p>Your application for "%s" at %s has been submitted.</p>
						<p>The employer will contact you through your JobTowners inbox.</p>
					</td>
				</tr>
			</tbody>
		</table>
	</div>
`, data.FirstName, data.JobTitle, data.Company)

	message := []byte(subject + mime + body)
	utils.SendMail(data.Email, message)
}
