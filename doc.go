// Copyright 2023 uhppoted@twyst.co.za. All rights reserved.
// Use of this source code is governed by an MIT-style license
// that can be found in the LICENSE file.

/*
Package health-bot-sheets relays messages sent to a Telegram bot into rows of a Google Sheets worksheet.

Every free text message that is not a Yes/No button press is appended to the configured worksheet
as a [timestamp, text] row, using a Google service account for authorisation. The spreadsheet is
located by name through the Drive API and must be shared with the service account.

health-bot-sheets supports the following commands:

  - run, to long poll Telegram and record messages
  - serve, to run the bot alongside an HTTP health check (GET / returns 'ok') for hosted deployments
  - append, to append a single row from the command line
  - version, to display the current version

The bot answers the following Telegram commands:

  - /start, replies with a greeting
  - /buttons, replies with a one-shot Yes/No keyboard
*/
package healthbot
