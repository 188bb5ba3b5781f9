/*
Package directorysdk is a client for the Hidden Gems directory service.

# SDKClient vs Session

SDKClient covers the public endpoints: health probes, registration, login
and anonymous browsing. Register and Login return a Session, which carries
the bearer token and covers everything that needs an identity.

	client := directorysdk.NewSDKClient("http://localhost:8080")

	session, err := client.Login(ctx, "alice", "pw12345")
	if err != nil {
		return err
	}

	page, err := session.ListBusinesses(ctx, directorysdk.PageOptions{Sort: "rating,desc"})
	favorited, err := session.ToggleFavorite(ctx, page.Content[0].ID)

Anonymous calls never report a business as favorited.

# Errors

Every non-2xx response becomes an *APIError holding the HTTP status and the
{"error","error_description"} body. Compare with errors.Is against the
predefined values, which match on status and code:

	if errors.Is(err, directorysdk.ErrInvalidCredentials) { ... }

The same values are used by the server to write its error responses.
*/
package directorysdk
