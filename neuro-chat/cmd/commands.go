package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/weiawesome/neurolab/neuro-chat/internal/api"
	"github.com/weiawesome/neurolab/neuro-chat/internal/chat"
)

// askCmd sends one message and prints the reply as it is revealed.
var askCmd = &cobra.Command{
	Use:   "ask [message]",
	Short: "Send one message to the assistant",
	Long: `Sends a single message and prints the reply chunk by chunk, with the
same pauses as the chat screen.

Example:
  neuro-chat ask "Tell me about EEG"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

var historyCmd = &cobra.Command{
	Use:   "history [chat-id]",
	Short: "List past chats, or show one chat",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runHistory,
}

var analyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "Show the analytics snapshot",
	Args:  cobra.NoArgs,
	RunE:  runAnalytics,
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show the user profile",
	Args:  cobra.NoArgs,
	RunE:  runProfile,
}

var (
	updateName    string
	updateEmail   string
	updatePicture string
)

var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update the user profile",
	Long: `Updates the fields given as flags. Fields without a flag are left as they are.

Example:
  neuro-chat profile update --name "Alex Morgan" --email alex@example.com`,
	Args: cobra.NoArgs,
	RunE: runProfileUpdate,
}

var (
	signupName     string
	signupEmail    string
	signupPassword string
)

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create an account",
	Args:  cobra.NoArgs,
	RunE:  runSignup,
}

var homeCmd = &cobra.Command{
	Use:   "home",
	Short: "Show the home dashboard",
	Args:  cobra.NoArgs,
	RunE:  runHome,
}

var liveCmd = &cobra.Command{
	Use:   "live",
	Short: "Show the live brain activity series",
	Args:  cobra.NoArgs,
	RunE:  runLive,
}

var testsCmd = &cobra.Command{
	Use:   "tests [test-id]",
	Short: "List recorded brain tests, or show one test",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTests,
}

var testsQuery string

func init() {
	profileUpdateCmd.Flags().StringVar(&updateName, "name", "", "Full name")
	profileUpdateCmd.Flags().StringVar(&updateEmail, "email", "", "Email address")
	profileUpdateCmd.Flags().StringVar(&updatePicture, "picture", "", "Profile picture URL")

	signupCmd.Flags().StringVar(&signupName, "name", "", "Full name (required)")
	signupCmd.Flags().StringVar(&signupEmail, "email", "", "Email address (required)")
	signupCmd.Flags().StringVar(&signupPassword, "password", "", "Password, at least 6 characters (required)")
	signupCmd.MarkFlagRequired("name")
	signupCmd.MarkFlagRequired("email")
	signupCmd.MarkFlagRequired("password")

	testsCmd.Flags().StringVarP(&testsQuery, "query", "q", "", "Filter by label or description")
}

// streamPrinter writes the assistant reply of a conversation as it grows.
type streamPrinter struct {
	w       io.Writer
	printed string
}

func (p *streamPrinter) observe(u chat.Update) {
	if u.Kind != chat.MessageAppended && u.Kind != chat.MessageChanged {
		return
	}
	if u.Message.IsUser {
		return
	}
	text := u.Message.Text
	if strings.HasPrefix(text, p.printed) {
		fmt.Fprint(p.w, text[len(p.printed):])
	} else {
		fmt.Fprint(p.w, "\n", text)
	}
	p.printed = text
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	out := cmd.OutOrStdout()
	printer := &streamPrinter{w: out}
	conv := chat.New(client,
		chat.WithTiming(timing()),
		chat.WithObserver(printer.observe),
	)
	defer conv.Close()

	if ok, err := conv.Submit(ctx, strings.Join(args, " ")); err != nil {
		return err
	} else if !ok {
		return fmt.Errorf("message is empty")
	}
	conv.Wait()
	fmt.Fprintln(out)
	return nil
}

func runHistory(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if len(args) == 1 {
		detail, err := client.ChatDetail(ctx, args[0])
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(out, detail)
		}
		fmt.Fprintf(out, "%s (%s)\n\n", detail.Title, detail.Timestamp.Local().Format(time.RFC1123))
		for _, m := range detail.Messages {
			who := "NeuroLab"
			if m.IsUser {
				who = "You"
			}
			fmt.Fprintf(out, "%-9s %s\n", who+":", m.Text)
		}
		return nil
	}

	chats, err := client.ChatHistory(ctx)
	if err != nil {
		return err
	}
	if jsonOutput {
		return printJSON(out, chats)
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tWHEN\tLAST MESSAGE")
	for _, c := range chats {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", c.ID, c.Title, c.Timestamp.Local().Format("Jan 2 15:04"), c.LastMessageSnippet)
	}
	return tw.Flush()
}

func runAnalytics(cmd *cobra.Command, _ []string) error {
	snap, err := client.Analytics(cmd.Context())
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if jsonOutput {
		return printJSON(out, snap)
	}

	fmt.Fprintf(out, "Attention score:   %d\n", snap.AttentionScore)
	fmt.Fprintf(out, "Cognitive load:    %d\n", snap.CognitiveLoad)
	fmt.Fprintf(out, "Mental fatigue:    %d\n", snap.MentalFatigue)
	fmt.Fprintf(out, "Relaxation level:  %d\n", snap.RelaxationLevel)
	fmt.Fprintf(out, "Confidence:        %d%%\n", snap.Confidence)
	d := snap.StateDistribution
	fmt.Fprintf(out, "States:            focused %d%%, relaxed %d%%, neutral %d%%, distracted %d%%\n",
		d.Focused, d.Relaxed, d.Neutral, d.Distracted)
	if len(snap.Recommendations) > 0 {
		fmt.Fprintln(out, "\nRecommendations:")
		for _, r := range snap.Recommendations {
			fmt.Fprintf(out, "  - %s\n", r)
		}
	}
	return nil
}

func runProfile(cmd *cobra.Command, _ []string) error {
	p, err := client.Profile(cmd.Context())
	if err != nil {
		return err
	}
	return printProfile(cmd.OutOrStdout(), p)
}

func printProfile(out io.Writer, p *api.UserProfile) error {
	if jsonOutput {
		return printJSON(out, p)
	}
	fmt.Fprintf(out, "ID:      %s\n", p.ID)
	fmt.Fprintf(out, "Name:    %s\n", p.FullName)
	fmt.Fprintf(out, "Email:   %s\n", p.Email)
	if p.ProfilePicture != "" {
		fmt.Fprintf(out, "Picture: %s\n", p.ProfilePicture)
	}
	fmt.Fprintf(out, "Joined:  %s\n", p.JoinedAt.Local().Format("January 2, 2006"))
	return nil
}

func runProfileUpdate(cmd *cobra.Command, _ []string) error {
	var update api.ProfileUpdate
	if cmd.Flags().Changed("name") {
		update.FullName = &updateName
	}
	if cmd.Flags().Changed("email") {
		update.Email = &updateEmail
	}
	if cmd.Flags().Changed("picture") {
		update.ProfilePicture = &updatePicture
	}
	if update == (api.ProfileUpdate{}) {
		return fmt.Errorf("nothing to update: pass --name, --email or --picture")
	}

	res, err := client.UpdateProfile(cmd.Context(), update)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if jsonOutput {
		return printJSON(out, res)
	}
	fmt.Fprintln(out, res.Message)
	if res.Profile != nil {
		return printProfile(out, res.Profile)
	}
	return nil
}

func runSignup(cmd *cobra.Command, _ []string) error {
	res, err := client.Signup(cmd.Context(), api.SignupRequest{
		FullName: signupName,
		Email:    signupEmail,
		Password: signupPassword,
	})
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if jsonOutput {
		return printJSON(out, res)
	}
	fmt.Fprintf(out, "%s\nAccount %s created for %s <%s>\n", res.Message, res.User.ID, res.User.FullName, res.User.Email)
	return nil
}

func runHome(cmd *cobra.Command, _ []string) error {
	home, err := client.Home(cmd.Context())
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if jsonOutput {
		return printJSON(out, home)
	}

	fmt.Fprintf(out, "Analyses: %d   Reports: %d\n", home.Analyses.Total, home.Reports.Total)
	fmt.Fprintf(out, "Mental state: %s (%d%%) %s\n", home.MentalState.State, home.MentalState.Percentage, home.MentalState.Message)
	printSeries(out, home.LiveData)
	if len(home.Recommendations) > 0 {
		fmt.Fprintln(out, "\nRecommendations:")
		for _, r := range home.Recommendations {
			fmt.Fprintf(out, "  - %s: %s\n", r.Title, r.Description)
		}
	}
	return nil
}

func runLive(cmd *cobra.Command, _ []string) error {
	series, err := client.LiveBrainData(cmd.Context())
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if jsonOutput {
		return printJSON(out, series)
	}
	printSeries(out, series)
	return nil
}

func printSeries(out io.Writer, series []api.BrainData) {
	for _, p := range series {
		fmt.Fprintf(out, "%6s %s %3.0f\n", p.Timestamp, strings.Repeat("█", int(p.Value)/5), p.Value)
	}
}

func runTests(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if len(args) == 1 {
		t, err := client.Test(ctx, args[0])
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(out, t)
		}
		fmt.Fprintf(out, "%s at %s\n%s\n\n", t.Label, t.Timestamp, t.Description)
		fmt.Fprintf(out, "Attention %d, fatigue %d, relaxation %d, lead %s\n",
			t.AttentionScore, t.MentalFatigue, t.RelaxationLevel, t.CognitiveLead)
		fmt.Fprintf(out, "\n%s\n", t.Analysis)
		for _, r := range t.Recommendations {
			fmt.Fprintf(out, "  - %s\n", r)
		}
		return nil
	}

	tests, err := client.Tests(ctx, testsQuery)
	if err != nil {
		return err
	}
	if jsonOutput {
		return printJSON(out, tests)
	}
	if len(tests) == 0 {
		fmt.Fprintln(out, "No tests found")
		return nil
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tLABEL\tTIME\tDESCRIPTION")
	for _, t := range tests {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", t.ID, t.Label, t.Timestamp, t.Description)
	}
	return tw.Flush()
}

func printJSON(out io.Writer, v interface{}) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
