package main

import (
	"bytes"
	"context"
	"fmt"
	"net/mail"

	"github.com/pkg/errors"

	"github.com/kalashala/kalashala/apps"
	"github.com/kalashala/kalashala/core"
	"github.com/kalashala/kalashala/core/fee"
)

const reminderTemplate = `Hello,

{{.Count}} student(s) have not paid their fees for {{.Period}}:
{{range .Rows}}
  - {{.StudentName}} ({{.LocationName}}){{end}}

The full list is attached.
`

func parsePeriod(s string) (fee.Period, error) {
	if s == "" {
		return fee.PeriodOf(nowFunc()), nil
	}
	return fee.ParsePeriod(s)
}

func (cli *commandLine) recordPayment(ctx context.Context, studentID, rawAmount, rawPeriod string) error {
	amount, err := fee.ParseAmount(rawAmount)
	if err != nil {
		return apps.NewArgumentError("invalid amount: " + rawAmount)
	}
	period, err := parsePeriod(rawPeriod)
	if err != nil {
		return apps.NewArgumentError("invalid period: " + rawPeriod)
	}

	s, err := cli.svcs.Students.Get(ctx, studentID)
	if err != nil {
		return err
	}
	var payment fee.Fee
	err = core.RetryOnConflict(func() (err error) {
		payment, err = cli.svcs.Fees.RecordPayment(ctx, s.ID, amount, period)
		return err
	})
	if err != nil {
		return errors.Wrap(err, "recording payment")
	}
	fmt.Fprintf(cli.out, "Recorded %s for %s (%s).\n", payment.Amount.StringFixed(2), s.Name, payment.Period)
	return nil
}

// feeReminder emails the office the students who have not paid for the period, with a CSV attachment.
func (cli *commandLine) feeReminder(ctx context.Context, rawPeriod string) error {
	period, err := parsePeriod(rawPeriod)
	if err != nil {
		return apps.NewArgumentError("invalid period: " + rawPeriod)
	}

	rows, err := cli.svcs.Fees.ListForPeriod(ctx, period, fee.Unpaid)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Fprintf(cli.out, "No unpaid fees for %s.\n", period)
		return nil
	}

	var buf bytes.Buffer
	if err = fee.WriteCSV(&buf, rows); err != nil {
		return errors.Wrap(err, "writing unpaid fees")
	}
	msg := &core.EmailMessage{
		To:           []mail.Address{cli.conf.OfficeEmail()},
		Subject:      "Unpaid fees for " + period.String(),
		Template:     reminderTemplate,
		TemplateData: map[string]interface{}{"Count": len(rows), "Period": period, "Rows": rows},
	}
	if err = msg.Attach(&buf, "unpaid_fees_"+period.String()+".csv", "text/csv"); err != nil {
		return errors.Wrap(err, "attaching unpaid fees")
	}

	cli.mailSvc.SendMessages(msg)
	cli.mailSvc.Wait()
	fmt.Fprintf(cli.out, "Reminder sent for %d student(s).\n", len(rows))
	return nil
}
