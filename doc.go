// Package mailmerge sends templated email campaigns to recipient lists
// loaded from CSV files.
//
// A campaign is driven by three inputs: a recipient list whose header
// row names the merge fields, a template whose first line carries the
// subject and whose body uses {{field}} placeholders, and a delivery
// provider. The runner walks the list strictly in order, renders the
// template per recipient, and delivers one message at a time with a
// configurable pause between attempts.
//
// # Basic Usage
//
//	cfg, err := mailmerge.LoadConfig("config.json")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	provider, err := mailmerge.NewProvider(cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	recipients, err := mailmerge.LoadRecipients("companies.csv")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	tmpl, err := mailmerge.LoadTemplate("email_template.txt")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	campaign := mailmerge.NewCampaign(provider, cfg.From(),
//		mailmerge.WithDelay(time.Second),
//	)
//
//	summary, err := campaign.Run(context.Background(), recipients, tmpl)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(summary)
//
// # Supported Providers
//
//   - Generic SMTP (implicit TLS)
//   - AWS SES
//   - SendGrid
//   - Mailgun
//
// # Dry Runs
//
// Passing WithDryRun(true) makes Run render and count every recipient
// without touching the provider, so a campaign can be previewed against
// the real list before anything is sent.
package mailmerge
