/*
Package questsdk provides a client for the CardQuest HTTP API and the wire
types the server encodes.

Every response is a JSON object carrying a "success" flag. Successful
responses carry the payload fields next to it; failed ones carry an "error"
message and a non-2xx status, surfaced here as *APIError:

	client := questsdk.NewSDKClient("http://localhost:8080")

	reg, err := client.BeginRegistration(ctx, cardHash)
	// hand reg.Token to the participant, they finish in the chat bot

	q, err := client.GetQuestion(ctx, userID, "math")
	res, err := client.Answer(ctx, q.ID, 1)
	if questsdk.IsNotFound(err) {
		// already answered
	}
*/
package questsdk
