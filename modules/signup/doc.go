// Package signup serves the signup form and runs its validation on the
// server.
//
// The browser keeps the field values in datastar signals. Every blur, focus,
// input and submit event posts the signals back; the service rebuilds the
// form as a dom.Document, lets form.Validator react to the event exactly as
// it would in the page, and streams the elements it touched back as patches.
// After an accepted submission the stream stays open until the success
// notice is hidden.
//
// Without JavaScript the form posts urlencoded data to the same submit
// route and the whole page is rendered again.
package signup
