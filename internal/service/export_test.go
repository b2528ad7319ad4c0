package service

// DownloadExpiry re-exports downloadExpiry for the external test package.
const DownloadExpiry = downloadExpiry
