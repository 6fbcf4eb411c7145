package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/asteroid-belt/repcache/internal/models"
)

var (
	likePostID   string
	unlikePostID string
)

var likeCmd = &cobra.Command{
	Use:   "like <type> <target-id>",
	Short: "Toggle a like on a post, comment, or workout",
	Long: `Toggle the cached like state for a target.

The local cache is updated immediately and the remote write happens in
the background. If the backend is unreachable the like stays pending
and is replayed at the next startup sync.

Type is one of: post, comment, workout. Comments are scoped under a
post; pass the post with --post.

Examples:
  repcache like post p123
  repcache like workout w42
  repcache like comment c7 --post p123`,
	Args: cobra.ExactArgs(2),
	RunE: runLike,
}

var unlikeCmd = &cobra.Command{
	Use:   "unlike <type> <target-id>",
	Short: "Alias of 'like': toggles the cached like state",
	Long: `Toggle the cached like state for a target.

Likes are a toggle: running this on an unliked target likes it, and
vice versa. Provided as a separate name for readability in scripts.`,
	Args: cobra.ExactArgs(2),
	RunE: runUnlike,
}

var pendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "List like mutations not yet confirmed by the backend",
	Args:  cobra.NoArgs,
	RunE:  runPending,
}

func init() {
	likeCmd.Flags().StringVar(&likePostID, "post", "", "post id scoping a comment like")
	unlikeCmd.Flags().StringVar(&unlikePostID, "post", "", "post id scoping a comment like")
}

func runLike(cmd *cobra.Command, args []string) error {
	return toggleLike(cmd, "like", args[0], args[1], likePostID)
}

func runUnlike(cmd *cobra.Command, args []string) error {
	return toggleLike(cmd, "unlike", args[0], args[1], unlikePostID)
}

func toggleLike(cmd *cobra.Command, cmdName, rawType, targetID, postID string) error {
	ctx := cmd.Context()

	likeType, ok := models.ParseLikeType(rawType)
	if !ok {
		return trackCLIError(cmdName, fmt.Errorf("invalid like type %q (want post, comment, or workout)", rawType))
	}

	app, err := openApp()
	if err != nil {
		return trackCLIError(cmdName, err)
	}
	defer func() { _ = app.Close() }()

	if app.cfg.API.UserID == "" {
		return trackCLIError(cmdName, fmt.Errorf("no user identity configured (set REPCACHE_USER_ID)"))
	}

	app.syncOnStartup(ctx)

	key := models.LikeKey{
		UserID:   app.cfg.API.UserID,
		TargetID: targetID,
		Type:     likeType,
		PostID:   postID,
	}

	liked, err := app.likes.ToggleLike(ctx, key)
	if err != nil {
		return trackCLIError(cmdName, err)
	}
	telemetryClient.TrackLikeToggled(string(likeType), liked)

	if liked {
		fmt.Printf("Liked %s %s.\n", likeType, targetID)
	} else {
		fmt.Printf("Unliked %s %s.\n", likeType, targetID)
	}
	return nil
}

func runPending(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return trackCLIError("pending", err)
	}
	defer func() { _ = app.Close() }()

	pending, err := app.db.ListPendingLikes()
	if err != nil {
		return trackCLIError("pending", err)
	}

	if len(pending) == 0 {
		fmt.Println("No pending like mutations.")
		return nil
	}

	for _, like := range pending {
		state := "unlike"
		if like.IsLiked {
			state = "like"
		}
		fmt.Printf("  %s %s %s  (since %s)\n", state, like.LikeType, like.TargetID,
			like.Timestamp.Format("2006-01-02 15:04:05"))
	}
	fmt.Printf("\n%d pending; they sync at next startup.\n", len(pending))
	return nil
}
