package mailsmodels

import (
	"fmt"
	"time"

	"github.com/LauraM111/jobtowners-backend-sub001/utils"
)

type SubscriptionReminderData struct {
	FirstName string
	Email     string
	PlanName  string
	EndDate   time.Time
}

// SubscriptionReminder notifies a subscriber that the current period ends in
// about 24 hours.
func SubscriptionReminder(data SubscriptionReminderData) {
	subject := "Subject: Your subscription expires soon - JobTowners \r\n"
	mime := "MIME-version: 1.0;\r\nContent-Type: text/html; charset=\"UTF-8\";\r\n\r\n"
	body := fmt.Sprintf(`
	<div style="background-color: #1D4ED8; width: 100%%; min-height: 300px; padding: 30px; box-sizing:border-box">
		<table style="background-color: #ffffff; width: 100%%;  min-height: 300px;">
			<tbody>
				<tr>
					<td><h1 style="text-align:center">Your subscription expires soon</h1></td>
				</tr>
				<tr>
					<td style="text-align:center; padding-bottom: 30px;">
						<p>Hello %s,</p>
						<p>Your "%s" subscription ends on %s.</p>
						<p>Renew it from your account to keep access to your plan features.</p>
					</td>
				</tr>
			</tbody>
		</table>
	</div>
`, data.FirstName, data.PlanName, data.EndDate.Format("January 2, 2006"))

	message := []byte(subject + mime + body)
	utils.SendMail(data.Email, message)
}
